package review

// BaseIntervals defines the expanding review interval schedule in days.
// Stage 0 = first review after a topic is mastered.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationStage is the stage at which a topic graduates. A topic graduates
// after completing all six stages successfully.
const GraduationStage = 6

// GraduatedIntervalDays is the review interval for graduated topics.
const GraduatedIntervalDays = 90
