package query

import (
	"testing"

	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Logo Design", Description: "Need a logo", Category: "Grafikdesign", Location: "Berlin", Budget: "100-200"},
		{ID: 2, Title: "Moderne Website", Description: "Shop relaunch", Category: "Webentwicklung", Location: "Hamburg", Budget: "500-1000"},
		{ID: 3, Title: "Blog Texte", Description: "SEO Artikel", Category: "Content Writing", Location: "Remote", Budget: ""},
		{ID: 4, Title: "Imagefilm", Description: "Kurzer Clip", Category: "Video Editing", Location: "Berlin, Remote", Budget: "Verhandelbar"},
	}
}

func TestFilterTasks_EmptySearchTermIsIdentity(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, Filter{SearchTerm: ""})

	assert.Equal(t, tasks, result)
}

func TestFilterTasks_Idempotent(t *testing.T) {
	tasks := sampleTasks()
	filter := Filter{SearchTerm: "design", Location: "berlin"}

	once := FilterTasks(tasks, filter)
	twice := FilterTasks(once, filter)

	assert.Equal(t, once, twice)
}

func TestFilterTasks_SearchMatchesAnyField(t *testing.T) {
	tasks := sampleTasks()

	byTitle := FilterTasks(tasks, Filter{SearchTerm: "logo design"})
	assert.Len(t, byTitle, 1)
	assert.Equal(t, uint64(1), byTitle[0].ID)

	byDescription := FilterTasks(tasks, Filter{SearchTerm: "relaunch"})
	assert.Len(t, byDescription, 1)
	assert.Equal(t, uint64(2), byDescription[0].ID)

	byCategory := FilterTasks(tasks, Filter{SearchTerm: "WEBENTWICKLUNG"})
	assert.Len(t, byCategory, 1)
	assert.Equal(t, uint64(2), byCategory[0].ID)
}

func TestFilterTasks_LocationSubstring(t *testing.T) {
	tasks := sampleTasks()

	result := FilterTasks(tasks, Filter{Location: "berlin"})

	assert.Len(t, result, 2)
	assert.Equal(t, uint64(1), result[0].ID)
	assert.Equal(t, uint64(4), result[1].ID)
}

func TestFilterTasks_MaxPriceUsesLargestEmbeddedInteger(t *testing.T) {
	tasks := sampleTasks()

	// "100-200" parses to 200, so max_price 50 excludes the logo task.
	maxPrice := 50
	result := FilterTasks(tasks, Filter{SearchTerm: "logo", MaxPrice: &maxPrice})
	assert.Empty(t, result)

	maxPrice = 200
	result = FilterTasks(tasks, Filter{SearchTerm: "logo", MaxPrice: &maxPrice})
	assert.Len(t, result, 1)
}

func TestFilterTasks_NonNumericBudgetCountsAsZero(t *testing.T) {
	tasks := sampleTasks()

	// Empty and non-numeric budgets parse to 0 and survive any positive cap.
	maxPrice := 50
	result := FilterTasks(tasks, Filter{MaxPrice: &maxPrice})

	assert.Len(t, result, 2)
	assert.Equal(t, uint64(3), result[0].ID)
	assert.Equal(t, uint64(4), result[1].ID)
}

func TestMaxBudget(t *testing.T) {
	assert.Equal(t, 200, MaxBudget("100-200"))
	assert.Equal(t, 1000, MaxBudget("500-1000"))
	assert.Equal(t, 150, MaxBudget("ca. 150"))
	assert.Equal(t, 0, MaxBudget(""))
	assert.Equal(t, 0, MaxBudget("Verhandelbar"))
	assert.Equal(t, 80, MaxBudget("80"))
}

func TestPartitionByOwner(t *testing.T) {
	me := uint64(7)
	other := uint64(9)
	tasks := []models.Task{
		{ID: 1, CreatedBy: &me},
		{ID: 2, CreatedBy: &other},
		{ID: 3, CreatedBy: nil},
	}

	p := PartitionByOwner(tasks, &me)

	assert.Len(t, p.Mine, 1)
	assert.Equal(t, uint64(1), p.Mine[0].ID)
	assert.Len(t, p.Others, 2)
}

func TestPartitionByOwner_NoIdentity(t *testing.T) {
	me := uint64(7)
	tasks := []models.Task{
		{ID: 1, CreatedBy: &me},
		{ID: 2},
	}

	p := PartitionByOwner(tasks, nil)

	assert.Empty(t, p.Mine)
	assert.Len(t, p.Others, 2)
}

func TestGroupByCategory_FlattenedEqualsInput(t *testing.T) {
	tasks := sampleTasks()

	g := GroupByCategory(tasks)

	flattened := []models.Task{}
	for _, category := range g.Categories {
		flattened = append(flattened, g.Tasks[category]...)
	}

	assert.ElementsMatch(t, tasks, flattened)
}

func TestGroupByCategory_LiteralKeysNoNormalization(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Category: "Webentwicklung"},
		{ID: 2, Category: "webentwicklung"},
		{ID: 3, Category: "Webentwicklung"},
	}

	g := GroupByCategory(tasks)

	assert.Equal(t, []string{"Webentwicklung", "webentwicklung"}, g.Categories)
	assert.Len(t, g.Tasks["Webentwicklung"], 2)
	assert.Len(t, g.Tasks["webentwicklung"], 1)
}

func TestGroupByCategory_PreservesFirstSeenOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Category: "Beratung"},
		{ID: 2, Category: "Grafikdesign"},
		{ID: 3, Category: "Beratung"},
	}

	g := GroupByCategory(tasks)

	assert.Equal(t, []string{"Beratung", "Grafikdesign"}, g.Categories)
	assert.Equal(t, uint64(1), g.Tasks["Beratung"][0].ID)
	assert.Equal(t, uint64(3), g.Tasks["Beratung"][1].ID)
}
