package execute

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"assay/pkg/logging"

	"github.com/google/uuid"
)

// Snapshot is a captured workspace state that can be restored once.
type Snapshot interface {
	// ID identifies the snapshot
	ID() string
	// Restore puts the workspace back to the captured state
	Restore(ctx context.Context) error
	// Release discards the snapshot without restoring
	Release() error
}

// Snapshotter captures workspace state before a risky call.
type Snapshotter interface {
	Capture(ctx context.Context) (Snapshot, error)
}

// WorkspaceSnapshotter snapshots a workspace directory by copying its
// tree to a holding area outside the workspace. Restore wipes the
// workspace and copies the tree back, so files created after capture
// disappear and modified or deleted files return.
type WorkspaceSnapshotter struct {
	root string
}

// NewWorkspaceSnapshotter creates a snapshotter for the given workspace
// directory.
func NewWorkspaceSnapshotter(root string) *WorkspaceSnapshotter {
	return &WorkspaceSnapshotter{root: root}
}

// Capture copies the workspace tree to a temporary holding directory.
func (w *WorkspaceSnapshotter) Capture(ctx context.Context) (Snapshot, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("workspace %s not accessible: %w", w.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", w.root)
	}

	id := uuid.New().String()
	holdDir, err := os.MkdirTemp("", "assay-snapshot-")
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if err := copyTree(ctx, w.root, holdDir); err != nil {
		os.RemoveAll(holdDir)
		return nil, fmt.Errorf("failed to capture workspace: %w", err)
	}

	logging.Debug("Engine", "Captured workspace snapshot %s (%s -> %s)", id, w.root, holdDir)
	return &workspaceSnapshot{id: id, root: w.root, holdDir: holdDir}, nil
}

type workspaceSnapshot struct {
	id      string
	root    string
	holdDir string
}

func (s *workspaceSnapshot) ID() string {
	return s.id
}

// Restore wipes the workspace contents and copies the captured tree
// back in.
func (s *workspaceSnapshot) Restore(ctx context.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("failed to read workspace %s: %w", s.root, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear workspace entry %s: %w", entry.Name(), err)
		}
	}

	if err := copyTree(ctx, s.holdDir, s.root); err != nil {
		return fmt.Errorf("failed to restore workspace from snapshot %s: %w", s.id, err)
	}

	logging.Info("Engine", "Restored workspace %s from snapshot %s", s.root, s.id)
	return nil
}

// Release discards the captured tree.
func (s *workspaceSnapshot) Release() error {
	return os.RemoveAll(s.holdDir)
}

// copyTree copies the directory tree at src into dst, which must exist.
// The context is checked between files so large captures stay cancelable.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}

		// Skip irregular files (sockets, device nodes); only regular
		// files participate in rollback
		if !entry.Type().IsRegular() {
			return nil
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
