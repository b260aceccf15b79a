package migration

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/node"
)

// ErrAlreadyInstalled is returned when the version already exists in the versions directory
var ErrAlreadyInstalled = errors.New("version is already installed")

// Import copies a detected installation into {versionsDir}/{version}.
// The tree is copied next to the target first and renamed into place,
// so an interrupted import leaves nothing that looks installed.
func Import(dv DetectedVersion, versionsDir string) (string, error) {
	if node.Available(versionsDir, dv.Version) {
		return "", ErrAlreadyInstalled
	}

	target := filepath.Join(versionsDir, dv.Version)
	staging := target + ".migrating"

	if err := os.RemoveAll(staging); err != nil {
		return "", err
	}
	if err := copyTree(dv.InstallDir, staging); err != nil {
		_ = os.RemoveAll(staging)
		return "", fmt.Errorf("failed to copy %s: %w", dv.InstallDir, err)
	}

	if err := os.RemoveAll(target); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}
	if err := os.Rename(staging, target); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}

	return target, nil
}

// copyTree copies src to dst keeping file modes and symlinks
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
