package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"dpofinder/domain"
	"dpofinder/service"
)

// runConsole is the interactive lookup loop for operators without a
// browser: one address per line, "exit" quits.
func runConsole(resolver service.ResolverServiceImpl) {
	fmt.Println("Welcome to the AI-Powered Delivery Post Office Identification System!")
	fmt.Println(strings.Repeat("-", 30))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter address (or type 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "exit") {
			break
		}
		if input == "" {
			fmt.Println("Please enter an address.")
			continue
		}

		parsed := service.ParseAddress(input)
		fmt.Printf("\nParsed components: PIN=%q keywords=%v\n", parsed.PINCode, parsed.LocalityKeywords)

		resolution := resolver.ResolveAddress(context.Background(), input)
		printResolution(resolution)
	}

	fmt.Println("Thank you for using the system. Goodbye!")
}

func printResolution(resolution domain.Resolution) {
	fmt.Println("\n--- Suggestion ---")
	switch resolution.Status {
	case domain.StatusNotFound:
		fmt.Println("  Status:  NOT FOUND")
	case domain.StatusError:
		fmt.Println("  Status:  ERROR")
	case domain.StatusPartialMatchPIN, domain.StatusPartialMatchPINNoDPO:
		fmt.Println("  Status:  PARTIAL MATCH (PIN based)")
	default:
		fmt.Println("  Status:  SUCCESS")
	}

	if resolution.PINCode != "" {
		fmt.Printf("  PIN Code: %s\n", resolution.PINCode)
		fmt.Printf("  Delivery Post Office (DPO): %s\n", resolution.OfficeName)
	}
	if resolution.Score > 0 {
		fmt.Printf("  Score: %.2f\n", resolution.Score)
	}
	fmt.Printf("  Message: %s\n", resolution.Message)
	fmt.Println("---------------------")
	fmt.Println()
}
