// README: Manual smoke tool for the language recognizer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"flybot/internal/nlu"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	utterance := "i'd like to book a trip from Marseille to Paris between the 15th of november 2022 and the 30th of november 2022 for 500 dollars"
	if len(os.Args) > 1 {
		utterance = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	recognizer, err := nlu.NewGeminiRecognizer(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize recognizer: %v", err)
	}
	defer recognizer.Close()

	fmt.Printf("User: %s\n", utterance)

	result, err := recognizer.Recognize(ctx, utterance)
	if err != nil {
		log.Fatalf("Error recognizing: %v", err)
	}

	top := result.TopIntent()
	fmt.Printf("Intent: %s (%.2f)\n", top.Name, top.Score)
	for taxonomy, spans := range result.Entities {
		for _, s := range spans {
			fmt.Printf("  %-20s %q [%d:%d] score=%.2f", taxonomy, s.Text, s.Start, s.End, s.Score)
			if len(s.Timex) > 0 {
				fmt.Printf(" timex=%v", s.Timex)
			}
			fmt.Println()
		}
	}
}
