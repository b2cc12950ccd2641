// Command dbinspect dumps the redirect tables of a podfeed database.
// Useful for checking which proxy codes exist and what they point at.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := os.Getenv("REDIRECT_DB_PATH")
	if dbPath == "" {
		dbPath = "redirects.db"
	}
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Redirect Database Inspection ===")
	fmt.Println()

	total := 0
	for _, table := range []string{"sound", "article"} {
		count, err := dumpTable(db, table)
		if err != nil {
			log.Fatalf("Error reading %s table: %v", table, err)
		}
		total += count
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total redirects: %d\n", total)
}

// dumpTable prints every row of a redirect table and returns the row count.
func dumpTable(db *sql.DB, table string) (int, error) {
	rows, err := db.Query("SELECT proxy, original FROM " + table + " ORDER BY proxy")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	fmt.Printf("--- %s ---\n", table)
	count := 0
	for rows.Next() {
		var proxy, original string
		if err := rows.Scan(&proxy, &original); err != nil {
			return count, err
		}
		count++
		fmt.Printf("  %s -> %s\n", proxy, original)
	}
	fmt.Printf("  (%d rows)\n\n", count)
	return count, rows.Err()
}
