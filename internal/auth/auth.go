// Package auth resolves API credentials for the command-line tools.
//
// A key comes from its environment variable first, then from a
// GPG-encrypted file under ~/.polylingo. There is no built-in default:
// callers get an error when neither source has a key.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const credentialDir = ".polylingo"

// Credential names one API key and where to find it.
type Credential struct {
	Name   string
	EnvVar string
	File   string
}

var (
	// Groq is the translation key.
	Groq = Credential{Name: "Groq", EnvVar: "GROQ_API_KEY", File: "groq.gpg"}
	// Gemini is the key for the Gemini OCR backend.
	Gemini = Credential{Name: "Gemini", EnvVar: "GEMINI_API_KEY", File: "gemini.gpg"}
)

// ErrNoKey is returned when no source yields a key.
var ErrNoKey = errors.New("API key not found")

// GetAPIKey retrieves the key for c.
// Priority order:
//  1. the credential's environment variable
//  2. GPG-encrypted file at ~/.polylingo/<file>
func GetAPIKey(c Credential) (string, error) {
	if key := strings.TrimSpace(os.Getenv(c.EnvVar)); key != "" {
		log.Debug().Str("credential", c.Name).Msg("Using API key from environment variable")
		return key, nil
	}

	key, err := getFromGPG(c)
	if err == nil && key != "" {
		log.Debug().Str("credential", c.Name).Msg("Using API key from GPG encrypted file")
		return key, nil
	}

	log.Debug().Err(err).Str("credential", c.Name).Msg("No API key available")
	return "", fmt.Errorf("%w: set %s or store it GPG-encrypted at ~/%s/%s", ErrNoKey, c.EnvVar, credentialDir, c.File)
}

// getFromGPG decrypts the key from the credential's GPG file.
func getFromGPG(c Credential) (string, error) {
	credPath, err := getCredentialPath(c)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		return "", fmt.Errorf("GPG credentials file not found at %s", credPath)
	}

	log.Debug().Str("file", credPath).Msg("Decrypting GPG credentials")

	args := []string{"--decrypt", "--quiet"}
	if passphrasePath, ok := passphraseFile(); ok {
		args = append(args, "--pinentry-mode", "loopback", "--passphrase-file", passphrasePath)
	}
	args = append(args, credPath)

	output, err := exec.Command("gpg", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("GPG decryption failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("GPG decryption failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func getCredentialPath(c Credential) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, credentialDir, c.File), nil
}

// passphraseFile finds ~/.polylingo/.gpg-passphrase for non-interactive
// decryption. Files readable by group or others are ignored.
func passphraseFile() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, credentialDir, ".gpg-passphrase")
	fi, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if mode := fi.Mode().Perm(); mode&0o077 != 0 {
		log.Warn().
			Str("passphrase_file", path).
			Str("permissions", fmt.Sprintf("%04o", mode)).
			Msg("Passphrase file has insecure permissions (should be 0600); skipping")
		return "", false
	}
	return path, true
}
