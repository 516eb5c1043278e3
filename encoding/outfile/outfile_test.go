package outfile_test

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/readmap/encoding/outfile"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func writeText(text string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	}
}

func TestWrite(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	path := filepath.Join(tmpdir, "plain.txt")
	assert.NoError(t, outfile.Write(ctx, path, false, writeText("a\tb\n")))
	data, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	expect.EQ(t, string(data), "a\tb\n")
}

func TestWriteBgzip(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	path := filepath.Join(tmpdir, "out.txt.gz")
	assert.NoError(t, outfile.Write(ctx, path, true, writeText("a\tb\n")))
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close() // nolint: errcheck
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	data, err := ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, string(data), "a\tb\n")
}

func TestWriteError(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	failure := errors.E(errors.Invalid, "write failed")
	err := outfile.Write(ctx, filepath.Join(tmpdir, "out.txt"), true, func(io.Writer) error {
		return failure
	})
	expect.True(t, errors.Is(errors.Invalid, err))
}
