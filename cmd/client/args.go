package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-six-notes/models"
)

// parseSlot reads a slot argument; with no args it returns -1 (the
// selected slot).
func parseSlot(args []string) (int, error) {
	if len(args) == 0 {
		return -1, nil
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil || !models.ValidSlot(slot) {
		return 0, fmt.Errorf("slot must be a number from 0 to %d, got %q", models.NoteSlots-1, args[0])
	}
	return slot, nil
}

func parseOnOff(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", v)
}

// readLine reads a single line without its line ending.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
