package maincmd

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/talus/internal/filetest"
)

var testUpdateGoldenTests = flag.Bool("test.update-golden-tests", false, "update the golden .want files in testdata/out")

// TestRunSourceGolden runs every .talus file in testdata/in end to end and
// diffs the accumulated stdout against its golden file in testdata/out,
// covering the same six scenarios exercised individually in lang/interp.
func TestRunSourceGolden(t *testing.T) {
	const inDir = "testdata/in"
	const outDir = "testdata/out"

	for _, fi := range filetest.SourceFiles(t, inDir, ".talus") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(inDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			sio := mainer.Stdio{Stdin: bytes.NewReader(nil), Stdout: &out, Stderr: &out}
			_ = RunSource(sio, src)

			filetest.DiffOutput(t, fi, out.String(), outDir, testUpdateGoldenTests)
		})
	}
}
