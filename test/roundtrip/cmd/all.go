package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mime/message"
)

var allCmd = &cobra.Command{
	Use:   "all dir",
	Short: "Round-trips every message in a directory and reports failures",
	Args:  cobra.ExactArgs(1),
	Run:   RunAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func RunAll(cmd *cobra.Command, args []string) {
	dir := args[0]

	var pass, fail int
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		orig, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		m, err := message.ParseBytes(orig, message.WithUnlimitedRecursion())
		if err != nil {
			fmt.Printf("FAIL %s: parse: %v\n", path, err)
			fail++
			return nil
		}

		rt := &bytes.Buffer{}
		if _, err := m.WriteTo(rt); err != nil {
			fmt.Printf("FAIL %s: write: %v\n", path, err)
			fail++
			return nil
		}

		if !bytes.Equal(orig, rt.Bytes()) {
			fmt.Printf("FAIL %s: output differs from input\n", path)
			fail++
			return nil
		}

		pass++
		return nil
	})
	cobra.CheckErr(err)

	fmt.Printf("%d passed, %d failed\n", pass, fail)
	if fail > 0 {
		os.Exit(1)
	}
}
