package extract

import (
	"strings"
	"testing"
)

func TestInstructorsSearchResults(t *testing.T) {
	page := `<html><body>
		<div class="result">
			<span class="result__flex--9 text--right">Instructor: Bualuan, Ramzi</span>
		</div>
		<div class="result">
			<span class="result__flex--9 text--right">3:30p - 4:45p MW</span>
		</div>
		<div class="result">
			<span class="result__flex--9 text--right">Instructor: Kumar, Anita</span>
		</div>
	</body></html>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	want := []string{"Bualuan, Ramzi", "Kumar, Anita"}
	assertNames(t, got, want)
}

func TestInstructorsDetailPanel(t *testing.T) {
	page := `<div class="class-details">
		<div class="instructor-detail">Instructor: Ramzi Bualuan</div>
	</div>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	assertNames(t, got, []string{"Ramzi Bualuan"})
}

func TestInstructorsCalendarView(t *testing.T) {
	page := `<div class="calendar">
		<div class="calendar_viewing__instr">R. Bualuan</div>
		<div class="calendar_viewing__instr">A. Kumar</div>
	</div>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	assertNames(t, got, []string{"R. Bualuan", "A. Kumar"})
}

func TestInstructorsDropsPlaceholders(t *testing.T) {
	page := `<div>
		<div class="instructor-detail">Instructor: TBD</div>
		<div class="instructor-detail">Instructor: Staff</div>
		<div class="instructor-detail">Instructor: </div>
		<div class="instructor-detail">Instructor: Bualuan, Ramzi</div>
	</div>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	assertNames(t, got, []string{"Bualuan, Ramzi"})
}

func TestInstructorsDedupPreservesOrder(t *testing.T) {
	page := `<div>
		<div class="instructor-detail">Kumar, Anita</div>
		<div class="instructor-detail">Bualuan, Ramzi</div>
		<div class="instructor-detail">kumar, anita</div>
	</div>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	assertNames(t, got, []string{"Kumar, Anita", "Bualuan, Ramzi"})
}

func TestInstructorsNestedMarkup(t *testing.T) {
	page := `<span class="result__flex--9 text--right"><b>Instructor:</b> <a href="#">Bualuan, Ramzi</a></span>`

	got, err := Instructors(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}

	assertNames(t, got, []string{"Bualuan, Ramzi"})
}

func TestInstructorsEmptyDocument(t *testing.T) {
	got, err := Instructors(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Instructors() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
