package notify

const (
	missedWorkoutTitle = "Missed Workout"
	missedWorkoutBody  = "Hey! I noticed you didn't complete %s. Everything okay?"

	preWorkoutTitle = "Upcoming Workout"

	conflictTitle = "Training Schedule Conflict"
	conflictBody  = "Your calendar event '%s' conflicts with your training. Would you like to reschedule?"

	weeklyReviewTitle = "Weekly Training Review"
	weeklyReviewBody  = "Let's review your training week! How did it go?"
)

var preWorkoutBodies = []string{
	"Your %s workout starts soon. Time to get ready!",
	"Ready to crush %s? It starts in under an hour!",
	"Don't forget: %s is coming up. Fuel up and hydrate!",
}
