// Package snapshot compares JSON encodings of values against files in testdata
package snapshot

import (
	"encoding/json"
	"fmt"
	"moneymaster-server/internal/util"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var funcCount = make(map[string]int)

// UpdateEnv is the environment variable that allows missing snapshots to be written
const UpdateEnv = "MM_UPDATE_SNAPSHOTS"

// ValidateSnapshot compares obj with testdata/{func}-{call}.json
// A missing snapshot fails the test, unless MM_UPDATE_SNAPSHOTS=1 in which case it is written
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	pc, _, _, _ := runtime.Caller(1 + depth)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	call := funcCount[funcName]
	funcCount[funcName] = call + 1

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if util.Getenv(UpdateEnv, "") != "1" {
				t.Fatalf("snapshot %s does not exist, run with %s=1 to create it", filename, UpdateEnv)
			}

			write(t, filename, objJSON)
			return
		}

		t.Fatal(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func write(t *testing.T, filename string, objJSON []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filename, append(objJSON, '\n'), 0644); err != nil {
		t.Fatal(err)
	}
}
