package tcp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Replies the server sends instead of a quote.
const (
	ReplyHandshakeFailed    = "handshake failed"
	ReplyInvalidAnswer      = "invalid answer json"
	ReplyVerificationFailed = "challenge verification failed"
)

var errEmptyLine = errors.New("empty line")

// writeJSON writes v as one line of JSON and flushes.
func writeJSON(bw *bufio.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := bw.Write(append(payload, '\n')); err != nil {
		return err
	}
	return bw.Flush()
}

func writeLine(bw *bufio.Writer, s string) error {
	if _, err := bw.WriteString(s + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// readJSON reads one line and decodes it into v.
func readJSON(br *bufio.Reader, v any) error {
	line, err := br.ReadString('\n')
	if err != nil {
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return errEmptyLine
	}
	return json.Unmarshal([]byte(line), v)
}
