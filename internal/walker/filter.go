package walker

import (
	"io/fs"
	"os"

	"github.com/bethropolis/consolidate/internal/diag"
)

// consider runs a single file through the filters and appends it to the
// candidates when it survives all of them.
func (s *selector) consider(path, relativePath string, d fs.DirEntry) {
	info, ok := s.regular(path, relativePath, d)
	if !ok {
		return
	}

	if s.opts.Matcher != nil && s.opts.Matcher.Match(relativePath, false) {
		s.record(diag.Ignored, relativePath, false, nil)
		return
	}

	if !s.opts.Extensions.Allows(d.Name()) {
		s.record(diag.ExtensionFiltered, relativePath, false, nil)
		return
	}

	if s.opts.MaxFileSize > 0 && info.Size() > s.opts.MaxFileSize {
		s.opts.Logger.Debug("Walker: %q exceeds size limit (%d > %d bytes)", relativePath, info.Size(), s.opts.MaxFileSize)
		s.record(diag.SizeLimit, relativePath, false, nil)
		return
	}

	if s.opts.Detector != nil && s.opts.Detector.IsBinary(path) {
		s.record(diag.Binary, relativePath, false, nil)
		return
	}

	s.opts.Logger.Debug("Walker: File %q PASSED all checks", relativePath)
	s.candidates = append(s.candidates, Candidate{Path: path, RelativePath: relativePath})
}

// regular resolves d to a regular file. Symbolic links count when their
// target is a regular file; links to directories are never followed.
func (s *selector) regular(path, relativePath string, d fs.DirEntry) (fs.FileInfo, bool) {
	var (
		info fs.FileInfo
		err  error
	)
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = d.Info()
	}
	if err != nil {
		s.record(diag.WalkError, relativePath, false, err)
		return nil, false
	}
	if !info.Mode().IsRegular() {
		s.record(diag.NotRegular, relativePath, info.IsDir(), nil)
		return nil, false
	}
	return info, true
}
