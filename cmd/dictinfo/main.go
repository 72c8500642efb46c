package main

import (
	"fmt"
	"os"

	"github.com/hiroto-aoki/japanese-tokenizer/pkg/tokenizer"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	dictDir := os.Args[1]
	command := os.Args[2]

	dict, err := tokenizer.Load(dictDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	defer dict.Close()

	switch command {
	case "stats":
		fmt.Printf("Dictionary: %s\n", dictDir)
		fmt.Printf("Entry count: %d\n", dict.EntryCount())
		fmt.Printf("Context classes: %d\n", dict.Connections().Size())
		fmt.Printf("Longest surface: %d runes\n", dict.MaxSurfaceLen())
		fmt.Printf("Character categories: %d\n", len(dict.CharDefs().Categories))

	case "lookup":
		if len(os.Args) < 4 {
			fmt.Println("Error: lookup requires a word")
			os.Exit(1)
		}
		text := os.Args[3]
		matches := dict.Lookup(text)
		if len(matches) == 0 {
			fmt.Printf("No dictionary entry is a prefix of %q\n", text)
			os.Exit(1)
		}
		for _, m := range matches {
			e := m.Entry
			fmt.Printf("%6d  %s\t%s,%s,%s,%s,%s,%s\tleft=%d right=%d cost=%d\n",
				m.ID, e.Surface, e.POS, e.InflType, e.InflForm, e.BaseForm, e.Reading, e.Phonetic,
				e.LeftID, e.RightID, e.Cost)
		}

	case "category":
		if len(os.Args) < 4 {
			fmt.Println("Error: category requires a character")
			os.Exit(1)
		}
		runes := []rune(os.Args[3])
		for _, r := range runes {
			names := dict.CharDefs().CategoryNames(r)
			for _, name := range names {
				cat, _ := dict.CharDefs().Category(name)
				fmt.Printf("%#U  %s (invoke=%v group=%v length=%d)\n", r, name, cat.Invoke, cat.Group, cat.Length)
			}
		}

	case "unknown":
		if len(os.Args) < 4 {
			fmt.Println("Error: unknown requires a category name")
			os.Exit(1)
		}
		name := os.Args[3]
		entries := dict.UnknownEntries(name)
		if len(entries) == 0 {
			fmt.Printf("No unknown-word entries for category %q\n", name)
			os.Exit(1)
		}
		for i, e := range entries {
			fmt.Printf("%3d  %s\tleft=%d right=%d cost=%d\n", i, e.POS, e.LeftID, e.RightID, e.Cost)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: dictinfo <dictionary_dir> <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  stats                Show dictionary statistics")
	fmt.Println("  lookup <word>        List entries matching a prefix of word")
	fmt.Println("  category <char>      Show character categories for each rune")
	fmt.Println("  unknown <category>   List unknown-word entries of a category")
}
