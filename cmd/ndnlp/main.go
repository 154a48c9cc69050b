// Command ndnlp encodes, decodes, and exercises NDNLPv2 link protocol packets.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/version"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

var logger = logging.New("main")

var app = &cli.App{
	Version: version.V.String(),
	Usage:   "NDNLPv2 link protocol tool.",
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

// readHex reads a hexadecimal string from the first argument, or from stdin if the argument is absent or "-".
// Whitespace is ignored.
func readHex(c *cli.Context) ([]byte, error) {
	var input []byte
	if arg := c.Args().First(); arg != "" && arg != "-" {
		input = []byte(arg)
	} else {
		b, e := io.ReadAll(os.Stdin)
		if e != nil {
			return nil, e
		}
		input = b
	}

	s := strings.Map(func(ch rune) rune {
		if unicode.IsSpace(ch) {
			return -1
		}
		return ch
	}, string(input))
	return hex.DecodeString(s)
}

func printJSON(c *cli.Context, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetIndent("", "  ")
	if e := enc.Encode(v); e != nil {
		return e
	}
	_, e := b.WriteTo(c.App.Writer)
	return e
}

func main() {
	rand.Seed(time.Now().UnixNano())

	var uname unix.Utsname
	unix.Uname(&uname)
	logger.Debug("ndnlp starting",
		zap.Any("version", version.V),
		zap.ByteString("linux", bytes.TrimRight(uname.Release[:], string([]byte{0}))),
	)

	sort.Sort(cli.CommandsByName(app.Commands))
	if e := app.Run(os.Args); e != nil {
		logger.Fatal("error", zap.Error(e))
	}
}
