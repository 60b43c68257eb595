package importer

import (
	"reflect"
	"testing"

	"github.com/nonsonwune/result_report/models"
)

func TestResolveNames(t *testing.T) {
	cases := []struct {
		name      string
		table     models.Table
		want      []string
		wantFound bool
	}{
		{
			name: "first and last",
			table: models.Table{
				Columns: []string{"FirstName ", "LastName", "Name"},
				Rows: []models.RawRecord{
					{"FirstName ": " Asha", "LastName": "Rao ", "Name": "ignored"},
					{"FirstName ": "Ravi", "LastName": "", "Name": "ignored"},
				},
			},
			want:      []string{"Asha Rao", "Ravi"},
			wantFound: true,
		},
		{
			name: "name column",
			table: models.Table{
				Columns: []string{"Roll", "Student Name"},
				Rows: []models.RawRecord{
					{"Roll": "1", "Student Name": "Meera"},
					{"Roll": "2", "Student Name": "nan"},
				},
			},
			want:      []string{"Meera", "Student 2"},
			wantFound: true,
		},
		{
			name: "no name column",
			table: models.Table{
				Columns: []string{"earned 1"},
				Rows:    []models.RawRecord{{"earned 1": "1"}, {"earned 1": "2"}},
			},
			want:      []string{"Student 1", "Student 2"},
			wantFound: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ResolveNames(tc.table)
			if !reflect.DeepEqual(got, tc.want) || found != tc.wantFound {
				t.Fatalf("ResolveNames = %v, %v; want %v, %v", got, found, tc.want, tc.wantFound)
			}
		})
	}
}

func TestClosestColumn(t *testing.T) {
	cols := []string{"Name", "Maths", "Reasoning"}
	if got, ok := ClosestColumn(cols, "math", 2); !ok || got != "Maths" {
		t.Fatalf("ClosestColumn(math) = %q, %v", got, ok)
	}
	if _, ok := ClosestColumn(cols, "Chemistry", 2); ok {
		t.Fatal("ClosestColumn(Chemistry) matched")
	}
}
