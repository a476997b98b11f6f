package git

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// IsRepository checks if the current directory is inside a Git repository.
func IsRepository() bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	return cmd.Run() == nil
}

// EnsureIgnored makes sure every entry is listed in .gitignore, creating
// the file if needed. Outside a Git repository it only prints a hint.
func EnsureIgnored(entries []string) error {
	if !IsRepository() {
		fmt.Println("\nNote: Not inside a Git repository. If you initialize one later,")
		fmt.Printf("remember to add the following to your .gitignore: %s\n", strings.Join(entries, ", "))
		return nil
	}

	existing := make(map[string]bool)
	content, err := os.ReadFile(".gitignore")
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, entry := range entries {
		if !existing[entry] {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		fmt.Println("\n✓ .gitignore already contains the necessary entries.")
		return nil
	}

	file, err := os.OpenFile(".gitignore", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open or create .gitignore: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\n" + strings.Join(missing, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to write to .gitignore: %w", err)
	}

	fmt.Printf("\n✓ Added the following entries to .gitignore: %s\n", strings.Join(missing, ", "))
	fmt.Println("This prevents committing sensitive credentials and local database files.")

	return nil
}
