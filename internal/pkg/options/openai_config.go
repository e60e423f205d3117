package options

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultOpenAIConfigFile is the legacy KEY=value file holding OPENAI_API_KEY.
const DefaultOpenAIConfigFile = ".openai_config.txt"

// LoadOpenAIConfigFile parses path; a missing file yields an empty map.
func LoadOpenAIConfigFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return values, nil
}

// ResolveOpenAIAPIKey prefers the config file over the OPENAI_API_KEY environment variable.
func ResolveOpenAIAPIKey(path string) (string, error) {
	values, err := LoadOpenAIConfigFile(path)
	if err != nil {
		return os.Getenv("OPENAI_API_KEY"), err
	}
	if key := values["OPENAI_API_KEY"]; key != "" {
		return key, nil
	}
	return os.Getenv("OPENAI_API_KEY"), nil
}
