package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// ErrNotFound - файла нет, используется окружение процесса.
var ErrNotFound = errors.New("env file not found")

// Load подгружает переменные из файла, не перетирая уже заданные окружением,
// и применяет флаг -port поверх PORT.
func Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return applyFlags(flag.CommandLine, os.Args[1:])
}

func applyFlags(fset *flag.FlagSet, args []string) error {
	var port string
	if fset.Lookup("port") == nil {
		fset.StringVar(&port, "port", "", "Server port (overrides PORT environment variable)")
	}
	if err := fset.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if port != "" {
		if err := os.Setenv("PORT", port); err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
