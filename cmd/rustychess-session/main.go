// Command rustychess-session runs the §6.4 game-session server over stdio:
// one JSON client message per input line, one JSON server message per
// output line, in the order internal/session produces them.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpang35/rustychess/internal/session"
)

var hashMB = flag.Int("hash", 64, "transposition table size in MB")

func main() {
	flag.Parse()

	s := session.New(*hashMB)

	out := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg session.ClientMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			out.Encode(session.ErrorMessage{Type: "Error", Message: fmt.Sprintf("malformed request: %v", err)})
			continue
		}

		for _, reply := range s.Handle(msg) {
			if err := out.Encode(reply); err != nil {
				log.Fatalf("encode reply: %v", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}
