// Package topics provides a topic-based help system for Cobra CLI
// applications. Topics are markdown or text files served from an fs.FS
// (typically an embed.FS), making the CLI self-documenting.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Format  string // file extension, drives rendering
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"] if not specified.
	Extensions []string

	// Renderer for formatting topic content (optional).
	// Defaults to PlainRenderer if not specified.
	Renderer Renderer
}

// New creates a TopicManager from the topic files under dir in fsys
func New(fsys fs.FS, dir string, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:   make(map[string]*Topic),
		renderer: opts.Renderer,
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		supported := false
		for _, validExt := range extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read topic %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ext)
		tm.topics[name] = &Topic{
			Name:    name,
			Format:  ext,
			Content: string(content),
		}
	}

	return tm, nil
}

// GetTopic retrieves a topic by name. Flag-style lookups (--fresh) are
// normalized to their bare names.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	topic, exists := tm.topics[name]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	topics := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics
}

// Render formats a topic for terminal display
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, topic.Format)
}

// Install wires the topic system into rootCmd: a `topics` command
// listing what's available, and a help function that resolves topics
// before falling back to command help.
func (tm *TopicManager) Install(rootCmd *cobra.Command) {
	tm.originalHelp = rootCmd.HelpFunc()

	topicsCmd := &cobra.Command{
		Use:   "topics [topic]",
		Short: "Display available documentation topics",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				names := tm.ListTopics()
				if len(names) == 0 {
					cmd.Println("No help topics available.")
					return nil
				}
				cmd.Println("Available help topics:")
				for _, name := range names {
					cmd.Printf("  %s\n", name)
				}
				cmd.Printf("\nUse '%s topics <topic>' to read about a specific topic.\n", rootCmd.Name())
				return nil
			}

			topic, exists := tm.GetTopic(args[0])
			if !exists {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			cmd.Print(tm.Render(topic))
			return nil
		},
	}
	rootCmd.AddCommand(topicsCmd)

	// `odev help <topic>` also resolves topics
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, exists := tm.GetTopic(args[0]); exists {
				cmd.Print(tm.Render(topic))
				return
			}
		}
		tm.originalHelp(cmd, args)
	})
}
