// Command client is a REPL-driven HTTP client for manual testing of a
// running server, grounded in the teacher's tools/console.go shape
// (env-overridable server URL and identity, then a command loop posting
// JSON bodies) but talking to /reducer/{name} and /world/snapshot
// instead of /api/*.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var serverURL = "http://localhost:8080"
var identity string
var connectionID string

func main() {
	if url := os.Getenv("SURVIVAL_SERVER"); url != "" {
		serverURL = url
	}
	identity = os.Getenv("SURVIVAL_IDENTITY")
	if identity == "" {
		identity = uuid.NewString()
	}
	connectionID = uuid.NewString()

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Survival World Console")
	fmt.Printf("Target Server: %s\n", serverURL)
	fmt.Printf("Identity: %s\n", identity)
	fmt.Println("Commands: register <username>, move <x> <y> <direction>, viewport <minX> <minY> <maxX> <maxY>, snapshot, drop <instanceId> <qty>, attack, kill, help, quit")

	for {
		fmt.Printf("[%s]> ", shortIdentity())
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(strings.TrimSpace(text))
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "register":
			if len(parts) < 2 {
				fmt.Println("Usage: register <username>")
				continue
			}
			callReducer("register_player", map[string]interface{}{"Username": parts[1]})
		case "move":
			if len(parts) < 4 {
				fmt.Println("Usage: move <x> <y> <direction>")
				continue
			}
			x, _ := strconv.ParseFloat(parts[1], 64)
			y, _ := strconv.ParseFloat(parts[2], 64)
			callReducer("update_player_position", map[string]interface{}{"X": x, "Y": y, "Direction": parts[3]})
		case "viewport":
			if len(parts) < 5 {
				fmt.Println("Usage: viewport <minX> <minY> <maxX> <maxY>")
				continue
			}
			minX, _ := strconv.ParseFloat(parts[1], 64)
			minY, _ := strconv.ParseFloat(parts[2], 64)
			maxX, _ := strconv.ParseFloat(parts[3], 64)
			maxY, _ := strconv.ParseFloat(parts[4], 64)
			callReducer("update_viewport", map[string]interface{}{"MinX": minX, "MinY": minY, "MaxX": maxX, "MaxY": maxY})
		case "drop":
			if len(parts) < 3 {
				fmt.Println("Usage: drop <instanceId> <qty>")
				continue
			}
			instanceID, _ := strconv.ParseInt(parts[1], 10, 64)
			qty, _ := strconv.Atoi(parts[2])
			callReducer("drop_item", map[string]interface{}{"InstanceID": instanceID, "Qty": qty})
		case "attack":
			callReducer("attack", nil)
		case "kill":
			callReducer("kill_self", nil)
		case "snapshot":
			doSnapshot()
		case "help":
			fmt.Println("Commands: register <username>, move <x> <y> <direction>, viewport <minX> <minY> <maxX> <maxY>, snapshot, drop <instanceId> <qty>, attack, kill, help, quit")
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for options.")
		}
	}
}

func shortIdentity() string {
	if len(identity) > 8 {
		return identity[:8]
	}
	return identity
}

func callReducer(name string, payload map[string]interface{}) {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req, err := http.NewRequest(http.MethodPost, serverURL+"/reducer/"+name, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-Identity", identity)
	req.Header.Set("X-Connection-Id", connectionID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Connection Error: %v\n", err)
		return
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("[%d] %s\n", resp.StatusCode, string(respBody))
}

func doSnapshot() {
	req, err := http.NewRequest(http.MethodGet, serverURL+"/world/snapshot", nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	req.Header.Set("X-Player-Identity", identity)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Connection Error: %v\n", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("[%d] %s\n", resp.StatusCode, string(body))
}
