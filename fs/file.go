// Package fs writes rendered reports to the local filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/siteinv"
)

// ReportFile writes a report to path with atomic update semantics.
// Output goes to path.tmp and is moved over path on Commit.
type ReportFile struct {
	path string
	file *os.File
}

// NewReportFile creates a new ReportFile targeting path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

func (f *ReportFile) tempPath() string {
	return f.path + ".tmp"
}

// Write renders report with rw into the temporary file.
func (f *ReportFile) Write(rw siteinv.ReportWriter, report *siteinv.Report) error {
	if f.file == nil {
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return err
		}
		file, err := os.Create(f.tempPath())
		if err != nil {
			return err
		}
		f.file = file
	}
	return rw.WriteReport(f.file, report)
}

// Commit closes the temporary file and renames it to the final path.
func (f *ReportFile) Commit() error {
	if f.file == nil {
		return siteinv.Errorf(siteinv.EINVALID, "nothing written to %s", f.path)
	}
	if err := f.file.Close(); err != nil {
		return err
	}
	f.file = nil
	if err := os.Rename(f.tempPath(), f.path); err != nil {
		return fmt.Errorf("rename %s: %w", f.tempPath(), err)
	}
	return nil
}

// Abort discards the temporary file. The final path is left untouched.
func (f *ReportFile) Abort() error {
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}
	if err := os.Remove(f.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteReport renders report to path, replacing any previous file only
// when rendering succeeds.
func WriteReport(path string, rw siteinv.ReportWriter, report *siteinv.Report) error {
	f := NewReportFile(path)
	if err := f.Write(rw, report); err != nil {
		_ = f.Abort()
		return err
	}
	return f.Commit()
}
