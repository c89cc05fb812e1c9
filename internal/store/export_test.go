package store

func init() {
	// Keep sealing fast under test.
	scryptN = 1 << 10
}
