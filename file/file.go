package file

import (
	"io"
	"os"
)

type File struct {
	file *os.File
}

func New(path string, flag int) (*File, error) {
	file, err := os.OpenFile(path, flag, os.FileMode(0766))
	return &File{
		file: file,
	}, err
}

func (f *File) Name() string {
	return f.file.Name()
}

func (f *File) ReadAll() ([]byte, error) {
	return io.ReadAll(f.file)
}

func (f *File) Size() int64 {
	info, err := f.file.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

func (f *File) Close() error {
	return f.file.Close()
}
