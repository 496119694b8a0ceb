package analyzer

type Course struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const (
	DefaultCourseCount = 5
	MinCourseCount     = 1
	MaxCourseCount     = 10
)

var (
	dataScienceCourses = []Course{
		{Name: "Machine Learning A-Z", URL: "https://coursera.org/ml"},
		{Name: "Deep Learning Specialization", URL: "https://coursera.org/deeplearning"},
		{Name: "Python for Data Science", URL: "https://udemy.com/python-datascience"},
	}
	webCourses = []Course{
		{Name: "The Web Developer Bootcamp", URL: "https://udemy.com/web-developer"},
		{Name: "React - The Complete Guide", URL: "https://udemy.com/react-complete"},
		{Name: "Node.js Complete Course", URL: "https://udemy.com/nodejs"},
	}
	androidCourses = []Course{
		{Name: "Android Development", URL: "https://udemy.com/android-development"},
		{Name: "Kotlin for Android", URL: "https://udemy.com/kotlin-android"},
		{Name: "Flutter Complete Course", URL: "https://udemy.com/flutter"},
	}
	iosCourses = []Course{
		{Name: "iOS & Swift - The Complete Course", URL: "https://udemy.com/ios-swift"},
		{Name: "SwiftUI Masterclass", URL: "https://udemy.com/swiftui"},
	}
	uiuxCourses = []Course{
		{Name: "UI/UX Design Complete", URL: "https://udemy.com/uiux-design"},
		{Name: "Figma UI Design", URL: "https://udemy.com/figma-design"},
	}

	resumeVideos    = []string{"https://www.youtube.com/watch?v=q6-J2LF54Fg"}
	interviewVideos = []string{"https://www.youtube.com/watch?v=eIho2S0ZahI"}
)

// ClampCourseCount maps a requested count into [MinCourseCount, MaxCourseCount];
// zero means DefaultCourseCount.
func ClampCourseCount(n int) int {
	switch {
	case n == 0:
		return DefaultCourseCount
	case n < MinCourseCount:
		return MinCourseCount
	case n > MaxCourseCount:
		return MaxCourseCount
	default:
		return n
	}
}

// RecommendCourses shuffles a copy of courses and returns up to n of them.
func RecommendCourses(courses []Course, n int, rnd RandomSource) []Course {
	shuffled := make([]Course, len(courses))
	copy(shuffled, courses)
	if rnd != nil {
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rnd.Intn(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
	}

	n = ClampCourseCount(n)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

type BonusVideos struct {
	ResumeTips    string `json:"resume_tips"`
	InterviewPrep string `json:"interview_prep"`
}

func PickBonusVideos(rnd RandomSource) BonusVideos {
	return BonusVideos{
		ResumeTips:    pick(resumeVideos, rnd),
		InterviewPrep: pick(interviewVideos, rnd),
	}
}

func pick(items []string, rnd RandomSource) string {
	if len(items) == 0 {
		return ""
	}
	if rnd == nil {
		return items[0]
	}
	return items[rnd.Intn(len(items))]
}
