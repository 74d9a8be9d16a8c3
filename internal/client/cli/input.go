package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

// readPassword and isTerminal are test seams for x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password without
// echo. When stdin is not a terminal the password is read as a plain line
// from reader.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// ParseCoordinates parses a guess written as "lat,lng" (spaces allowed).
func ParseCoordinates(s string) (float64, float64, error) {
	latText, lngText, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: expected lat,lng", common.ErrValidation)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q is not a number", common.ErrValidation, strings.TrimSpace(latText))
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q is not a number", common.ErrValidation, strings.TrimSpace(lngText))
	}

	if math.IsNaN(lat) || math.IsNaN(lng) {
		return 0, 0, fmt.Errorf("%w: coordinates must be numbers", common.ErrValidation)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("%w: latitude must be between -90 and 90", common.ErrValidation)
	}
	if lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("%w: longitude must be between -180 and 180", common.ErrValidation)
	}
	return lat, lng, nil
}

// formatDistance renders meters as "850 m" or "1234.5 km".
func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
