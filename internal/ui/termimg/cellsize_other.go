//go:build !unix

package termimg

func getCellSize() (cellW, cellH int) { return 8, 16 }
