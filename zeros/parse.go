package zeros

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single input line. Ordinates are short decimal
// strings; anything near this limit is a malformed file.
const maxLineSize = 1 << 20

// ParseText reads one ordinate per line. Lines that do not parse as a float
// are skipped and counted; the 1-based line number becomes the zero's index
// so indices stay stable across files with occasional bad lines.
func ParseText(r io.Reader) (zs []Zero, skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var lineNo uint64
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			skipped++
			continue
		}
		gamma, err := strconv.ParseFloat(line, 64)
		if err != nil {
			skipped++
			continue
		}
		zs = append(zs, Zero{Index: lineNo, Gamma: gamma})
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read zeros: %w", err)
	}
	return zs, skipped, nil
}
