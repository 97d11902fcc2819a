package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// watchOutput is the output monitor: the single writer of buf. It runs
// for the lifetime of the service process, appending each captured line
// and mirroring it to echo. The pipe reports EOF only after the child
// (and any descendant holding the write end) is gone, so the monitor is
// reaped implicitly; exit-state checks belong to the supervisor and
// always follow the drain, never precede it.
func watchOutput(pipe io.Reader, buf *OutputBuffer, echo io.Writer) {
	sc := bufio.NewScanner(pipe)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		buf.Append(line)
		if echo != nil {
			fmt.Fprintln(echo, line)
		}
	}
	if closer, ok := pipe.(io.Closer); ok {
		closer.Close()
	}
}
