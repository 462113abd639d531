package models

// Controlled vocabularies for document metadata. These mirror the school's
// curriculum structure and are enforced at intake.

// ClassLevels are the secondary school levels, S1 (youngest) to S6.
var ClassLevels = []string{"S1", "S2", "S3", "S4", "S5", "S6"}

// Subjects taught at the school.
var Subjects = []string{
	"Mathematics", "Physics", "Chemistry", "Biology", "English",
	"History", "Geography", "Computer Science", "Economics", "French",
}

// Years offered as filter options, newest first. Intake accepts any
// four-digit year so fresh uploads are not blocked on this list.
var Years = []string{"2024", "2023", "2022", "2021", "2020", "2019"}

// DocumentTags are the curated tags staff may attach to uploads.
var DocumentTags = []string{
	"Mock", "National Exam", "Revision", "Answers", "Important",
	"Updated", "Teacher Copy", "Student Copy", "Term 1", "Term 2", "Term 3",
}

// ValidClassLevel reports whether level is a known class level.
func ValidClassLevel(level string) bool {
	return contains(ClassLevels, level)
}

// ValidSubject reports whether subject is a known subject.
func ValidSubject(subject string) bool {
	return contains(Subjects, subject)
}

// ValidTag reports whether tag is in the curated tag list.
func ValidTag(tag string) bool {
	return contains(DocumentTags, tag)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
