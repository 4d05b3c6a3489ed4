package elements

import (
	"io/fs"

	"github.com/spf13/afero"
)

// OsFs returns the operating system filesystem rooted at root. An empty root
// is the working directory.
func OsFs(root string) afero.Fs {
	if root == "" || root == "." {
		return afero.NewOsFs()
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root)
}

// FromFS adapts a read-only filesystem, such as an embed.FS holding the
// packaged resources, for use with New.
func FromFS(fsys fs.FS) afero.Fs {
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: fsys})
}
