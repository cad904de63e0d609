package walker

import "bytes"

// magicPrefixes are well-known binary file signatures checked ahead of
// the null-byte scan (spec §4.1 "Binary detection by magic bytes +
// null-byte scan of first 8 KiB").
var magicPrefixes = [][]byte{
	{0x7F, 'E', 'L', 'F'},       // ELF
	{0x4D, 0x5A},                // PE/DOS
	{0x89, 'P', 'N', 'G'},       // PNG
	{0xFF, 0xD8, 0xFF},          // JPEG
	{'G', 'I', 'F', '8'},        // GIF
	{'P', 'K', 0x03, 0x04},      // ZIP / jar / docx / ...
	{0x25, 'P', 'D', 'F'},       // PDF
	{0x1F, 0x8B},                // gzip
	{0xCA, 0xFE, 0xBA, 0xBE},    // Java class / Mach-O fat
	{0xFE, 0xED, 0xFA, 0xCE},    // Mach-O
	{0xFE, 0xED, 0xFA, 0xCF},    // Mach-O 64
}

const sniffWindow = 8 * 1024

// IsBinary reports whether a content sample looks binary: a known magic
// prefix, or a null byte within the first 8 KiB.
func IsBinary(sample []byte) bool {
	for _, magic := range magicPrefixes {
		if bytes.HasPrefix(sample, magic) {
			return true
		}
	}
	window := sample
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	return bytes.IndexByte(window, 0) >= 0
}
