// Command admin is the operator console: an interactive menu when run
// with no arguments, a scripted CONFIRM-token CLI otherwise, grounded in
// the teacher's user-console.go shape against the survival world's own
// tables instead of users/colonies/fleets.
package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vitadek/survival/internal/config"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/store"
)

func main() {
	cfg := config.Load()
	db, err := store.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		fmt.Println("Error opening store:", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(os.Args) > 1 {
		handleCLI(db)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n========================================")
		fmt.Println("   SURVIVAL WORLD ADMIN CONSOLE")
		fmt.Println("========================================")
		fmt.Println("1. List Players")
		fmt.Println("2. List Structures")
		fmt.Println("3. Kill Player")
		fmt.Println("4. Exit")
		fmt.Println("========================================")
		fmt.Print("Select Option: ")

		if !scanner.Scan() {
			break
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			listPlayers(db)
		case "2":
			listStructures(db)
		case "3":
			killPlayerInteractive(db, scanner)
		case "4":
			fmt.Println("Exiting.")
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

// handleCLI mirrors the teacher's non-interactive "delete <id> CONFIRM"
// pattern: `admin kill <identity> CONFIRM`.
func handleCLI(db *sql.DB) {
	switch os.Args[1] {
	case "list":
		listPlayers(db)
	case "kill":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin kill <identity> CONFIRM")
			return
		}
		identity := os.Args[2]
		confirm := ""
		if len(os.Args) > 3 {
			confirm = os.Args[3]
		}
		if confirm != "CONFIRM" {
			fmt.Printf("Error: to kill %s you must pass 'CONFIRM' as a third argument.\n", identity)
			fmt.Printf("Example: %s kill %s CONFIRM\n", os.Args[0], identity)
			return
		}
		performKill(db, identity)
	default:
		fmt.Println("Unknown command. Available commands: list, kill")
	}
}

func listPlayers(db *sql.DB) {
	rows, err := db.Query(`SELECT identity, username, health, is_online, is_dead, last_update FROM player ORDER BY username ASC`)
	if err != nil {
		fmt.Printf("Error querying players: %v\n", err)
		return
	}
	defer rows.Close()

	fmt.Println("\nIdentity                         | Username             | Health | Online | Dead  | Last Update")
	fmt.Println("----------------------------------|-----------------------|--------|--------|-------|------------------")
	for rows.Next() {
		var identity, username string
		var health float64
		var online, dead bool
		var lastUpdate time.Time
		if err := rows.Scan(&identity, &username, &health, &online, &dead, &lastUpdate); err != nil {
			fmt.Println("scan error:", err)
			continue
		}
		fmt.Printf("%-34s | %-21s | %6.1f | %-6v | %-5v | %s\n",
			identity, username, health, online, dead, humanize.Time(lastUpdate))
	}
}

func listStructures(db *sql.DB) {
	rows, err := db.Query(`SELECT id, kind, placed_by, health, max_health, is_destroyed FROM structure ORDER BY id ASC`)
	if err != nil {
		fmt.Printf("Error querying structures: %v\n", err)
		return
	}
	defer rows.Close()

	var total int
	fmt.Println("\nID    | Kind             | Placed By                        | Health")
	fmt.Println("------|------------------|-----------------------------------|------------------")
	for rows.Next() {
		var id int64
		var kind, placedBy string
		var health, maxHealth float64
		var destroyed bool
		if err := rows.Scan(&id, &kind, &placedBy, &health, &maxHealth, &destroyed); err != nil {
			fmt.Println("scan error:", err)
			continue
		}
		total++
		status := fmt.Sprintf("%.0f / %.0f", health, maxHealth)
		if destroyed {
			status = "destroyed"
		}
		fmt.Printf("%-5d | %-16s | %-33s | %s\n", id, kind, placedBy, status)
	}
	fmt.Printf("\n%s structures total\n", humanize.Comma(int64(total)))
}

func killPlayerInteractive(db *sql.DB, scanner *bufio.Scanner) {
	fmt.Println("\n--- KILL PLAYER ---")
	fmt.Print("Enter Player Identity: ")
	scanner.Scan()
	identity := strings.TrimSpace(scanner.Text())
	if identity == "" {
		fmt.Println("Identity cannot be empty.")
		return
	}
	fmt.Printf("WARNING: this will zero %s's health immediately.\n", identity)
	fmt.Print("Type 'CONFIRM' to proceed: ")
	scanner.Scan()
	if strings.TrimSpace(scanner.Text()) != "CONFIRM" {
		fmt.Println("Cancelled.")
		return
	}
	performKill(db, identity)
}

// performKill applies the same "zero health" effect as the reducer.KillSelf
// admin command, but callable against any identity by an operator and
// without the self-service cooldown gate.
func performKill(db *sql.DB, identity string) {
	tx, err := db.Begin()
	if err != nil {
		fmt.Println("Error starting transaction:", err)
		return
	}
	repo := player.Repo{Tx: tx}
	p, err := repo.Get(identity)
	if err != nil {
		tx.Rollback()
		fmt.Println("Error:", err)
		return
	}
	if _, err := repo.ApplyDamage(identity, p.Health, time.Now()); err != nil {
		tx.Rollback()
		fmt.Println("Error applying damage:", err)
		return
	}
	if err := tx.Commit(); err != nil {
		fmt.Println("Error committing:", err)
		return
	}
	fmt.Printf("Player %s killed.\n", identity)
}
