package cache

const (
	keyPrefix       = "career:"
	questionsPrefix = keyPrefix + "questions:"
	CatalogKey      = keyPrefix + "catalog"

	// QuestionsPattern matches every cached question list.
	QuestionsPattern = questionsPrefix + "*"
)

// QuestionsKey is the cache key of the question list for one test. An empty
// test means the whole bank. Test ids are case sensitive, matching storage.
func QuestionsKey(test string) string {
	if test == "" {
		return questionsPrefix + "all"
	}
	return questionsPrefix + "test:" + test
}
