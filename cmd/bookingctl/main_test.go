package main

import (
	"os"
	"testing"
)

func TestMain_Version(t *testing.T) {
	old := os.Args
	os.Args = []string{"bookingctl", "version"}
	defer func() { os.Args = old }()
	main()
}

func TestMain_Help(t *testing.T) {
	old := os.Args
	os.Args = []string{"bookingctl", "help"}
	defer func() { os.Args = old }()
	main()
}

func TestMain_GlobalFlagsStripped(t *testing.T) {
	old := os.Args
	os.Args = []string{"bookingctl", "--verbose", "--debug", "version"}
	defer func() { os.Args = old }()
	main()
}
