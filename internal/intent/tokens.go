package intent

// Token sets are matched as substrings of the normalized message.

var summaryTokens = []string{
	"summarize",
	"summarise",
	"in one sentence",
	"in 1 sentence",
	"one sentence",
	"short summary",
	"concise summary",
}

// Academic planning terms. No dates.
var courseTokens = []string{
	"course", "courses", "class", "classes",
	"elective", "electives", "curriculum", "advisor", "track",
	"major", "minor", "prereq", "prereqs", "prerequisite", "prerequisites",
	"credit", "credits", "unit", "units",
	"requirement", "requirements", "eligibility",
	"degree plan", "graduation requirements",
}

// Class times, exam schedules and key academic dates.
var scheduleTokens = []string{
	"when", "date", "time", "schedule", "deadline", "window", "period",
	"term start", "start of term", "timetable", "calendar",
	"add/drop", "add drop", "census date",
	"midterm", "midterms", "final", "finals",
	"exam", "exams", "examination", "examinations",
	"graduation ceremony", "convocation",
}

var poemTokens = []string{
	"poem", "poems", "haiku", "poetry", "write a poem", "write poem", "verse",
	"limerick",
}

// Campus and student-life markers that put a poem request in scope.
var campusMarkers = []string{
	"campus", "student life", "students",
	"social life",
	"dorm", "dorms", "dormitory", "hostel", "residence hall",
	"library", "libraries", "quad", "student union",
	"cafeteria", "canteen", "mess", "coffee shop", "cafe", "café",
	"club", "clubs", "society", "societies",
	"lecture hall", "classroom", "classrooms",
	"lab", "labs", "hallway",
	"late-night", "late night", "study", "study sessions",
	"orientation", "orientation week", "welcome week", "freshers", "freshers week", "orientation day", "club fair",
	"exam", "exams", "midterm", "midterms", "final", "finals",
	// events
	"fest", "fests", "festival", "festivals",
	"hackathon", "hackathons",
	"tech fest", "cultural fest",
	"career fair", "job fair",
	"meetup", "meetups",
}

var advisingPhrases = []string{
	"which course", "what courses", "degree plan", "course plan", "plan my courses", "track",
}
