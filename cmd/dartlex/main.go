// Command dartlex builds and queries a dartlex lexicon from the command
// line: "build" turns dictionary/matrix source text into a persisted
// image, "query" loads a lexicon (text or persisted) and segments one
// input per line, concurrently, since a built Lexicon is safe for
// concurrent readers.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/dartlex/dartlex"
	"github.com/dartlex/dartlex/dict"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	app := cli.NewApp()
	app.Name = "dartlex"
	app.Usage = "morphological segmentation over a double-array trie lexicon"
	app.Commands = []cli.Command{buildCommand, queryCommand}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var buildCommand = cli.Command{
	Name:  "build",
	Usage: "compile dictionary + matrix source text into a persisted lexicon image",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "dict", Usage: "dictionary source text path"},
		cli.StringFlag{Name: "matrix", Usage: "connection matrix source text path"},
		cli.StringFlag{Name: "out", Usage: "output image path"},
	},
	Action: func(c *cli.Context) error {
		dictPath, matrixPath, outPath := c.String("dict"), c.String("matrix"), c.String("out")
		if dictPath == "" || matrixPath == "" || outPath == "" {
			return cli.NewExitError("build requires -dict, -matrix, and -out", 1)
		}

		dictFile, err := os.Open(dictPath)
		if err != nil {
			return err
		}
		defer dictFile.Close()

		matrixFile, err := os.Open(matrixPath)
		if err != nil {
			return err
		}
		defer matrixFile.Close()

		lex, err := dartlex.BuildText(dictFile, matrixFile, dict.DefaultClassifier)
		if err != nil {
			return err
		}

		outFile, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer outFile.Close()

		if err := dartlex.Save(outFile, lex); err != nil {
			return err
		}

		log.Printf("wrote %s", outPath)
		return nil
	},
}

var queryCommand = cli.Command{
	Name:  "query",
	Usage: "segment one input per line from -input (or stdin)",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "image", Usage: "persisted lexicon image path"},
		cli.StringFlag{Name: "dict", Usage: "dictionary source text path (alternative to -image)"},
		cli.StringFlag{Name: "matrix", Usage: "matrix source text path (alternative to -image)"},
		cli.StringFlag{Name: "input", Usage: "file with one input per line (default: stdin)"},
		cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent segmentation workers"},
	},
	Action: func(c *cli.Context) error {
		lex, err := loadLexicon(c)
		if err != nil {
			return err
		}

		in := os.Stdin
		if path := c.String("input"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var lines []string
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return err
		}

		results := make([]string, len(lines))

		var g errgroup.Group
		g.SetLimit(c.Int("workers"))

		for i, line := range lines {
			i, line := i, line
			g.Go(func() error {
				glosses, err := lex.Parse([]byte(line))
				if err != nil {
					results[i] = fmt.Sprintf("%s\t%v", line, err)
					return nil
				}
				results[i] = fmt.Sprintf("%s\t%s", line, joinGlosses(glosses))
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		for _, r := range results {
			fmt.Println(r)
		}
		return nil
	},
}

func loadLexicon(c *cli.Context) (*dartlex.Lexicon[dict.Gloss], error) {
	if imagePath := c.String("image"); imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dartlex.Load[dict.Gloss](f)
	}

	dictPath, matrixPath := c.String("dict"), c.String("matrix")
	if dictPath == "" || matrixPath == "" {
		return nil, cli.NewExitError("query requires -image, or both -dict and -matrix", 1)
	}

	dictFile, err := os.Open(dictPath)
	if err != nil {
		return nil, err
	}
	defer dictFile.Close()

	matrixFile, err := os.Open(matrixPath)
	if err != nil {
		return nil, err
	}
	defer matrixFile.Close()

	return dartlex.BuildText(dictFile, matrixFile, dict.DefaultClassifier)
}

func joinGlosses(glosses []dict.Gloss) string {
	surfaces := make([]string, len(glosses))
	for i, g := range glosses {
		surfaces[i] = g.Surface
	}
	return strings.Join(surfaces, " ")
}
