package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"reel/internal/bucket"
)

// Details holds the answers the capture prompt collects before recording.
type Details struct {
	Title    string
	Client   string
	Role     string
	ReelType string
}

// PromptDetails collects project details interactively. The title must be
// non-empty and the reel category must come from the fixed set; both
// re-ask on invalid input. An empty role falls back to the default and an
// empty client stays absent.
func PromptDetails(in io.Reader, out io.Writer) (Details, error) {
	reader := bufio.NewReader(in)
	var d Details

	for {
		title, err := ask(reader, out, "Project title: ")
		if err != nil {
			return Details{}, err
		}
		if title != "" {
			d.Title = title
			break
		}
		fmt.Fprintln(out, "A title is required.")
	}

	client, err := ask(reader, out, "Client name (optional): ")
	if err != nil {
		return Details{}, err
	}
	d.Client = client

	role, err := ask(reader, out, fmt.Sprintf("Your role [%s]: ", bucket.DefaultRole))
	if err != nil {
		return Details{}, err
	}
	if role == "" {
		role = bucket.DefaultRole
	}
	d.Role = role

	for {
		fmt.Fprintln(out, "Reel category:")
		for i, t := range bucket.ReelTypes {
			fmt.Fprintf(out, "  %d) %s\n", i+1, t)
		}
		answer, err := ask(reader, out, "Choose: ")
		if err != nil {
			return Details{}, err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(bucket.ReelTypes) {
			d.ReelType = bucket.ReelTypes[n-1]
			return d, nil
		}
		if bucket.ValidateReelType(answer) == nil {
			d.ReelType = answer
			return d, nil
		}
		fmt.Fprintln(out, "Pick a number or category name from the list.")
	}
}

func ask(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
