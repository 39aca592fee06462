package main

import (
	"fmt"
	"strings"

	"ai-docchat-be/pkg/rag/prompt"
	"ai-docchat-be/pkg/store"
)

func main() {
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                         PROMPT LAYOUT TRACE                                  ║")
	fmt.Println("║   Purpose: Observe the exact two-section prompt sent to the model            ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()

	trace("SCENARIO 1: Fresh session, no history", nil, "What is this document about?")

	trace("SCENARIO 2: Two recorded exchanges", []store.Exchange{
		{Question: "What is this document about?", Answer: "It is the Q3 financial report."},
		{Question: "Who prepared it?", Answer: "The finance team, signed off by the CFO."},
	}, "What was the total revenue?")

	trace("SCENARIO 3: One-sided exchange survives", []store.Exchange{
		{Question: "Is there an appendix?", Answer: ""},
	}, "List the appendix titles.")
}

func trace(title string, history []store.Exchange, question string) {
	fmt.Println("┌──────────────────────────────────────────────────────────────────────────────┐")
	fmt.Printf("│  %-76s│\n", title)
	fmt.Println("└──────────────────────────────────────────────────────────────────────────────┘")

	built := prompt.NewConversationBuilder(history, question).Build()

	fmt.Printf("📤 History entries: %d | Question: %q | Prompt bytes: %d\n\n", len(history), question, len(built))
	fmt.Println(strings.Repeat("─", 80))
	fmt.Println(built)
	fmt.Println(strings.Repeat("─", 80))

	// Quoted view makes the newline layout between sections visible.
	fmt.Println("\n🔍 Section boundaries (quoted):")
	for _, line := range strings.Split(built, "\n") {
		fmt.Printf("   %q\n", line)
	}
	fmt.Println()
}
