package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hiroto-aoki/japanese-tokenizer/pkg/tokenizer"
)

func main() {
	wakati := flag.Bool("wakati", false, "print space-separated surface forms only")
	asJSON := flag.Bool("json", false, "print tokens as JSON")
	nfkc := flag.Bool("nfkc", false, "apply NFKC normalization before tokenizing")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tokenize [flags] <dictionary_dir> [text]")
		fmt.Fprintln(os.Stderr, "       tokenize [flags] <dictionary_dir>          (interactive mode)")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	dict, err := tokenizer.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	defer dict.Close()
	tok := tokenizer.New(dict)

	// If text provided as argument, tokenize and exit
	if flag.NArg() > 1 {
		text := strings.Join(flag.Args()[1:], " ")
		if err := emit(tok, text, *wakati, *asJSON, *nfkc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	fmt.Println("Japanese Tokenizer (interactive mode)")
	fmt.Printf("Dictionary loaded: %d entries\n", dict.EntryCount())
	fmt.Println("Type a sentence, press Enter to tokenize. Ctrl+C to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if text == "" {
			continue
		}
		if err := emit(tok, text, *wakati, *asJSON, *nfkc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Println()
	}
}

func emit(tok *tokenizer.Tokenizer, text string, wakati, asJSON, nfkc bool) error {
	if nfkc {
		text = norm.NFKC.String(text)
	}

	if wakati {
		seq, err := tok.Wakati(text)
		if err != nil {
			return err
		}
		var parts []string
		for s := range seq {
			parts = append(parts, s)
		}
		fmt.Println(strings.Join(parts, " "))
		return nil
	}

	seq, err := tok.Tokenize(text)
	if err != nil {
		return err
	}
	if asJSON {
		var tokens []tokenizer.Token
		for t := range seq {
			tokens = append(tokens, t)
		}
		output, err := json.Marshal(tokens)
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}
	for t := range seq {
		fmt.Println(t)
	}
	fmt.Println("EOS")
	return nil
}
