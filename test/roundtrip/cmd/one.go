package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mime/message"
)

var oneCmd = &cobra.Command{
	Use:   "one message",
	Short: "Shows the diff of a single message round-trip",
	Args:  cobra.ExactArgs(1),
	Run:   RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

func RunOne(cmd *cobra.Command, args []string) {
	path := args[0]
	orig, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	m, err := message.ParseBytes(orig, message.WithUnlimitedRecursion())
	if err != nil {
		panic(err)
	}

	rt := &bytes.Buffer{}
	_, err = m.WriteTo(rt)
	if err != nil {
		panic(err)
	}

	fmt.Printf("path = %s\n", path)

	if bytes.Equal(orig, rt.Bytes()) {
		fmt.Println("round-trip is exact")
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(orig), rt.String(), false)
	fmt.Println(dmp.DiffPrettyText(diffs))
	os.Exit(1)
}
