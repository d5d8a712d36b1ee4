package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

// Known key prefixes, one per record family.
var prefixes = []string{"profile:", "friend:", "session:", "board:", "msg:", "account:"}

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (empty scans every known prefix)")
	flag.Parse()

	// BypassLockGuard allows opening while the server holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	scan := prefixes
	if *prefix != "" {
		scan = []string{*prefix}
	}

	for _, p := range scan {
		if err := renderPrefix(db, p); err != nil {
			log.Fatal(err)
		}
	}
}

func renderPrefix(db *badger.DB, prefix string) error {
	header := color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf(" %s ", prefix))
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				table.Append([]string{string(item.Key()), summarize(string(item.Key()), v)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	fmt.Println()
	return nil
}

// summarize flattens the stored JSON into a single "k=v" line, masking the
// password hash on account records.
func summarize(key string, value []byte) string {
	var record map[string]any
	if err := json.Unmarshal(value, &record); err != nil {
		return fmt.Sprintf("<%d opaque bytes>", len(value))
	}

	var parts []string
	for k, v := range record {
		if strings.HasPrefix(key, "account:") && k == "password_hash" {
			v = "<redacted>"
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
