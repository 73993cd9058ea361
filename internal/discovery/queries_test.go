package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleJob() JobRecord {
	return JobRecord{
		PrimaryTitle:     "Senior Data Engineer",
		CompanyName:      "Acme Corp",
		KeySkills:        []string{"Airflow", "dbt"},
		AlternateTitles:  []string{"Data Platform Engineer"},
		Location:         "Remote",
		AccuracyKeywords: "software",
	}
}

func TestBuildSearchQueries_ExampleScenario(t *testing.T) {
	t.Parallel()

	got := BuildSearchQueries(exampleJob())

	want := []string{
		`site:linkedin.com/in/ "Senior Data Engineer" "Acme Corp" company`,
		`site:linkedin.com/in/ "Senior Data Engineer" "Acme Corp" company software`,
		`site:linkedin.com/in/ "Acme Corp" company software`,
		`site:linkedin.com/in/ "Senior Data Engineer" "Acme Corp" company "Airflow"`,
		`site:linkedin.com/in/ "Senior Data Engineer" "Acme Corp" company "dbt"`,
		`site:linkedin.com/in/ "Data Platform Engineer" "Acme Corp" company`,
	}
	assert.Equal(t, want, got)
}

func TestBuildSearchQueries_Deterministic(t *testing.T) {
	t.Parallel()

	first := BuildSearchQueries(exampleJob())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildSearchQueries(exampleJob()))
	}
}

func TestBuildSearchQueries_DedupeAndCap(t *testing.T) {
	t.Parallel()

	job := JobRecord{
		PrimaryTitle: "Engineer",
		CompanyName:  "Acme",
		KeySkills: []string{
			"Go", "Go", "Kubernetes", "Terraform", "Postgres", "Kafka", "AWS",
		},
		AlternateTitles:  []string{"Software Engineer", "Backend Engineer", "Platform Engineer"},
		Location:         "Berlin",
		AccuracyKeywords: "software",
	}

	got := BuildSearchQueries(job)

	require.LessOrEqual(t, len(got), 10)
	seen := make(map[string]int)
	for _, q := range got {
		seen[q]++
	}
	for q, n := range seen {
		assert.Equalf(t, 1, n, "query %q appears %d times", q, n)
	}
}

func TestBuildSearchQueries_OrderPreservedAcrossDedupe(t *testing.T) {
	t.Parallel()

	// Empty accuracy keywords collapse the second query into the first;
	// survivors must keep their first-occurrence order.
	job := JobRecord{
		PrimaryTitle: "Engineer",
		CompanyName:  "Acme",
		KeySkills:    []string{"Go"},
	}

	got := BuildSearchQueries(job)

	want := []string{
		`site:linkedin.com/in/ "Engineer" "Acme" company`,
		`site:linkedin.com/in/ "Acme" company`,
		`site:linkedin.com/in/ "Engineer" "Acme" company "Go"`,
	}
	assert.Equal(t, want, got)
}

func TestBuildSearchQueries_LocationGating(t *testing.T) {
	t.Parallel()

	locationQuery := `site:linkedin.com/in/ "Engineer" "Acme" company "Lisbon"`

	tests := []struct {
		name     string
		location string
		want     bool
	}{
		{name: "absent", location: "", want: false},
		{name: "remote lower", location: "remote", want: false},
		{name: "remote mixed case", location: "Remote", want: false},
		{name: "remote upper", location: "REMOTE", want: false},
		{name: "city", location: "Lisbon", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := JobRecord{PrimaryTitle: "Engineer", CompanyName: "Acme", Location: tt.location}
			got := BuildSearchQueries(job)

			count := 0
			for _, q := range got {
				if tt.want && q == locationQuery {
					count++
				}
				if !tt.want {
					assert.NotContains(t, q, `"`+tt.location+`"`)
				}
			}
			if tt.want {
				assert.Equal(t, 1, count, "expected exactly one location-qualified query")
			}
		})
	}
}

func TestBuildSearchQueries_DegenerateRecord(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildSearchQueries(JobRecord{}))
	assert.Empty(t, BuildSearchQueries(JobRecord{PrimaryTitle: "  ", CompanyName: "\t"}))
}

func TestBuildSearchQueries_TitleOnly(t *testing.T) {
	t.Parallel()

	got := BuildSearchQueries(JobRecord{PrimaryTitle: "Engineer"})
	require.NotEmpty(t, got)
	assert.Equal(t, `site:linkedin.com/in/ "Engineer" company`, got[0])
}
