package cli

import (
	"os/exec"
	"runtime"
)

// openFile opens path with the platform's default viewer. Swapped out in tests.
var openFile = func(path string) error {
	var openCmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		openCmd = exec.Command("open", path)
	case "linux":
		openCmd = exec.Command("xdg-open", path)
	default:
		// Windows or other
		openCmd = exec.Command("cmd", "/c", "start", "", path)
	}
	return openCmd.Start()
}
