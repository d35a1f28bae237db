// Package filelist reads and writes Direct Connect file lists with Tiger Tree Hashes of the files.
package filelist

import (
	"compress/bzip2"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"

	"github.com/direct-connect/go-tiger"
)

// Version of the file list format.
const Version = 1

type Dir struct {
	Name       string `xml:"Name,attr"`
	Incomplete int    `xml:"Incomplete,attr,omitempty"`
	Dirs       []Dir  `xml:"Directory"`
	Files      []File `xml:"File"`
}

type File struct {
	Name string     `xml:"Name,attr"`
	Size int64      `xml:"Size,attr"`
	TTH  tiger.Hash `xml:"TTH,attr"`
}

type FileList struct {
	XMLName   xml.Name `xml:"FileListing"`
	Version   int      `xml:"Version,attr"`
	CID       string   `xml:"CID,attr,omitempty"`
	Base      string   `xml:"Base,attr"`
	Generator string   `xml:"Generator,attr"`
	Dirs      []Dir    `xml:"Directory"`
	Files     []File   `xml:"File"`
}

func Decode(r io.Reader) (*FileList, error) {
	var list FileList
	err := xml.NewDecoder(r).Decode(&list)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode file list")
	}
	return &list, nil
}

func DecodeBZIP(r io.Reader) (*FileList, error) {
	return Decode(bzip2.NewReader(r))
}

// Encode writes the file list as an indented XML document.
func Encode(w io.Writer, list *FileList) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(list); err != nil {
		return errors.Wrap(err, "cannot encode file list")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Walk calls fn for every file in the list with a slash-separated path relative to the list base.
func (l *FileList) Walk(fn func(path string, f *File) error) error {
	return walk("", l.Dirs, l.Files, fn)
}

func walk(prefix string, dirs []Dir, files []File, fn func(path string, f *File) error) error {
	for i := range files {
		if err := fn(prefix+files[i].Name, &files[i]); err != nil {
			return err
		}
	}
	for i := range dirs {
		d := &dirs[i]
		if err := walk(prefix+d.Name+"/", d.Dirs, d.Files, fn); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the total size of files in the list.
func (l *FileList) Size() (n int64) {
	l.Walk(func(_ string, f *File) error {
		n += f.Size
		return nil
	})
	return n
}
