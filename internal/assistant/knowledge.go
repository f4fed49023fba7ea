package assistant

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Intent classifies what a learner is asking for.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentThanks     Intent = "thanks"
	IntentDefinition Intent = "definition"
	IntentConcepts   Intent = "concepts"
	IntentExamples   Intent = "examples"
	IntentRelated    Intent = "related"
)

// Entry holds the curated content for one topic.
type Entry struct {
	Definition string
	Concepts   string
	Examples   string
}

// KnowledgeBase answers common learner questions about topics without
// calling an LLM. Related-topic answers are derived from the topic graph
// rather than curated by hand.
type KnowledgeBase struct {
	graph   *topicgraph.Graph
	entries map[string]Entry
}

// NewKnowledgeBase builds a knowledge base over the given graph. Topics
// without a curated entry still get related-topic answers.
func NewKnowledgeBase(g *topicgraph.Graph, entries map[string]Entry) *KnowledgeBase {
	if entries == nil {
		entries = SeedEntries()
	}
	return &KnowledgeBase{graph: g, entries: entries}
}

// Answer attempts to answer the question from local knowledge. The second
// return value reports whether an answer was produced; callers fall back to
// an LLM (or NotFound) when it is false.
func (kb *KnowledgeBase) Answer(question string) (string, bool) {
	q := normalize(question)

	if hasWord(q, greetingWords) {
		return pick(greetingTemplates, q), true
	}
	if containsAny(q, thanksWords) {
		return pick(thanksTemplates, q), true
	}

	topicID, ok := kb.matchTopic(q)
	if !ok {
		return "", false
	}
	topic, err := kb.graph.Topic(topicID)
	if err != nil {
		return "", false
	}
	intent := DetectIntent(q)

	if intent == IntentRelated {
		related := kb.relatedNames(topicID)
		if len(related) == 0 {
			return fmt.Sprintf("%s has no neighboring topics in the learning path yet.", topic.Name), true
		}
		return fill(pick(relatedTemplates, q), topic.Name, strings.Join(related, ", ")), true
	}

	entry, ok := kb.entries[topicID]
	if !ok {
		return "", false
	}

	var content string
	switch intent {
	case IntentConcepts:
		content = entry.Concepts
	case IntentExamples:
		content = entry.Examples
	default:
		content = entry.Definition
	}
	if content == "" {
		content = entry.Definition
	}
	if content == "" {
		return "", false
	}

	return fill(pick(templatesFor(intent), q), topic.Name, content), true
}

// NotFound produces the fallback answer listing known topics.
func (kb *KnowledgeBase) NotFound(question string) string {
	names := make([]string, 0, kb.graph.Len())
	for _, t := range kb.graph.Topics() {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return fill(pick(notFoundTemplates, normalize(question)), "", strings.Join(names, ", "))
}

// matchTopic finds the topic mentioned in the question, checking topic names
// first and then keywords.
func (kb *KnowledgeBase) matchTopic(q string) (string, bool) {
	topics := kb.graph.Topics()

	for _, t := range topics {
		if strings.Contains(q, strings.ToLower(t.Name)) {
			return t.ID, true
		}
	}
	for _, t := range topics {
		for _, kw := range t.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				return t.ID, true
			}
		}
	}
	return "", false
}

// relatedNames lists prerequisite and dependent topic names, prerequisites
// first.
func (kb *KnowledgeBase) relatedNames(topicID string) []string {
	var names []string
	seen := map[string]bool{}
	for _, t := range append(kb.graph.Prerequisites(topicID), kb.graph.Dependents(topicID)...) {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		names = append(names, t.Name)
	}
	return names
}

// DetectIntent classifies a normalized question. Definition is the default.
func DetectIntent(q string) Intent {
	checks := []struct {
		intent Intent
		words  []string
	}{
		{IntentConcepts, []string{"concept", "principle", "ideas", "fundamental", "basics of", "focus on"}},
		{IntentExamples, []string{"example", "application", "use case", "practical", "instance of"}},
		{IntentRelated, []string{"related", "similar", "what next", "after", "more topics", "explore"}},
		{IntentDefinition, []string{"what is", "what are", "define", "explain", "mean by", "definition", "tell me about"}},
	}
	for _, c := range checks {
		if containsAny(q, c.words) {
			return c.intent
		}
	}
	return IntentDefinition
}

var (
	greetingWords = []string{"hello", "hi", "hey", "greetings"}
	thanksWords   = []string{"thanks", "thank you", "appreciate"}

	greetingTemplates = []string{
		"Hello! I'm your learning assistant. Ask me about any topic on your path.",
		"Hi there! I can answer questions about the topics you're studying. What would you like to know?",
	}
	thanksTemplates = []string{
		"You're welcome! Let me know if you have more questions.",
		"Happy to help! Feel free to ask about any other topic.",
	}
	definitionTemplates = []string{
		"Here's what I know about %s: %s",
		"%s refers to: %s",
	}
	conceptsTemplates = []string{
		"Key concepts in %s include: %s",
		"When studying %s, focus on: %s",
	}
	examplesTemplates = []string{
		"Here are some examples of %s: %s",
		"To understand %s, consider: %s",
	}
	relatedTemplates = []string{
		"Topics related to %s on the learning path: %s",
		"After %s, you might explore: %s",
	}
	notFoundTemplates = []string{
		"I don't have information on that yet. Try asking about one of these topics: %[2]s",
		"I'm not familiar with that. I can answer questions about: %[2]s",
	}
)

func templatesFor(intent Intent) []string {
	switch intent {
	case IntentConcepts:
		return conceptsTemplates
	case IntentExamples:
		return examplesTemplates
	case IntentRelated:
		return relatedTemplates
	default:
		return definitionTemplates
	}
}

// pick selects a template deterministically from the question text, so the
// same question always gets the same phrasing.
func pick(templates []string, q string) string {
	h := fnv.New32a()
	h.Write([]byte(q))
	return templates[int(h.Sum32())%len(templates)]
}

func fill(template, topic, content string) string {
	return fmt.Sprintf(template, topic, content)
}

func normalize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// hasWord matches whole words only, so "hi" doesn't fire on "this".
func hasWord(q string, words []string) bool {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// SeedEntries returns curated content for the built-in topics.
func SeedEntries() map[string]Entry {
	return map[string]Entry{
		"programming-basics": {
			Definition: "The fundamental concepts and techniques of computer programming, including variables, control structures, functions, and basic algorithms.",
			Concepts:   "Variables, data types, operators, loops, conditionals, functions, and basic I/O operations.",
			Examples:   "Writing a program to calculate a factorial, creating a simple calculator, implementing a temperature converter.",
		},
		"data-structures": {
			Definition: "Ways to organize and store data in computer memory for efficient access and modification.",
			Concepts:   "Arrays, linked lists, stacks, queues, trees, graphs, hash tables, and heaps.",
			Examples:   "Implementing a linked list to manage a collection, using a stack to evaluate expressions, employing a hash table for fast lookups.",
		},
		"algorithms": {
			Definition: "Step-by-step procedures for solving problems, particularly calculations and data processing tasks.",
			Concepts:   "Sorting, searching, graph algorithms, greedy strategies, dynamic programming, and complexity analysis.",
			Examples:   "Implementing quicksort, using binary search to find an item, applying Dijkstra's algorithm to find shortest paths.",
		},
		"oop": {
			Definition: "Object-Oriented Programming is a paradigm based on objects that bundle data with the methods that operate on it.",
			Concepts:   "Classes, objects, inheritance, polymorphism, encapsulation, and abstraction.",
			Examples:   "Creating a class hierarchy for shapes, implementing a banking system with accounts and transactions, designing a game with character types.",
		},
		"databases": {
			Definition: "Systems designed to store, retrieve, and manage large amounts of data, with support for querying and manipulation.",
			Concepts:   "Relational databases, SQL, NoSQL, tables, queries, normalization, transactions, and ACID properties.",
			Examples:   "Creating a database for a library system, designing schemas for an e-commerce platform, optimizing queries for a social app.",
		},
		"operating-systems": {
			Definition: "Software that manages computer hardware and software resources and provides common services for programs.",
			Concepts:   "Process management, memory management, file systems, I/O management, virtualization, and security.",
			Examples:   "Implementing a simple scheduler, designing a memory allocator, creating a basic file system.",
		},
	}
}
