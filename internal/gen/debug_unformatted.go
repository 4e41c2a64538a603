package gen

import (
	"os"
	"path/filepath"
)

// writeDebugUnformatted writes the source go/format rejected next to the
// intended output. It is best-effort.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, UnformattedName(filename)), content, filePerm)
}

// UnformattedName returns the sidecar name for filename. The suffix keeps
// the go command from compiling it into the package.
func UnformattedName(filename string) string {
	return filename + ".unformatted"
}
