package topicgraph

// SeedTopics returns the built-in CS fundamentals catalog.
func SeedTopics() []Topic {
	return []Topic{
		{
			ID:            "programming-basics",
			Name:          "Programming Basics",
			Description:   "Variables, control flow, functions, and basic problem decomposition.",
			Keywords:      []string{"programming", "variables", "loops", "functions", "coding"},
			EstimatedMins: 60,
		},
		{
			ID:            "data-structures",
			Name:          "Data Structures",
			Description:   "Arrays, linked lists, stacks, queues, trees, and hash tables.",
			Keywords:      []string{"data structures", "arrays", "linked lists", "trees", "hash tables"},
			EstimatedMins: 90,
			Prerequisites: []string{"programming-basics"},
		},
		{
			ID:            "algorithms",
			Name:          "Algorithms",
			Description:   "Sorting, searching, recursion, and complexity analysis.",
			Keywords:      []string{"algorithms", "sorting", "searching", "big-o", "complexity"},
			EstimatedMins: 90,
			Prerequisites: []string{"data-structures"},
		},
		{
			ID:            "oop",
			Name:          "Object-Oriented Programming",
			Description:   "Classes, objects, inheritance, polymorphism, and encapsulation.",
			Keywords:      []string{"oop", "classes", "objects", "inheritance", "polymorphism"},
			EstimatedMins: 75,
			Prerequisites: []string{"programming-basics"},
		},
		{
			ID:            "databases",
			Name:          "Databases",
			Description:   "Relational models, SQL, normalization, and transactions.",
			Keywords:      []string{"databases", "sql", "relational", "normalization", "transactions"},
			EstimatedMins: 75,
			Prerequisites: []string{"programming-basics"},
		},
		{
			ID:            "operating-systems",
			Name:          "Operating Systems",
			Description:   "Processes, threads, scheduling, memory management, and file systems.",
			Keywords:      []string{"operating systems", "processes", "threads", "scheduling", "memory"},
			EstimatedMins: 90,
			Prerequisites: []string{"data-structures"},
		},
	}
}

// SeedGraph builds the Graph for the built-in catalog. The catalog is static
// and known-valid, so construction failure is a programming error.
func SeedGraph() *Graph {
	g, err := New(SeedTopics())
	if err != nil {
		panic("built-in topic catalog is invalid: " + err.Error())
	}
	return g
}
