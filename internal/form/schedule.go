package form

import "github.com/teemow/voicecal/internal/task"

// Field describes one prompt in the schedule.
type Field struct {
	Name      string
	Prompt    string
	Mandatory bool
}

// DefaultSchedule returns the nine event fields in the order they are asked.
func DefaultSchedule() []Field {
	return []Field{
		{
			Name:      task.FieldTask,
			Prompt:    "1. **Event Title**\nPlease provide a clear and concise title for the event (e.g., 'Team Meeting', 'Client Call').",
			Mandatory: true,
		},
		{
			Name:      task.FieldDateTime,
			Prompt:    "2. **Date & Time**\nPlease specify the date and time for the event (e.g., 'December 7, 2024, 3:00 PM EST').",
			Mandatory: true,
		},
		{
			Name:   task.FieldLocation,
			Prompt: "3. **Location**\nPlease provide the location of the event. If it's virtual, include the meeting link and access details.",
		},
		{
			Name:   task.FieldDescription,
			Prompt: "4. **Description**\nProvide a brief description of the event's purpose, agenda, or goals.",
		},
		{
			Name:   task.FieldParticipants,
			Prompt: "5. **Participants/Attendees**\nList who is invited to the event, including names and roles.",
		},
		{
			Name:   task.FieldAttachments,
			Prompt: "6. **Attachments/Links**\nInclude any necessary files or links to relevant resources (e.g., project files, articles).",
		},
		{
			Name:   task.FieldRecurrence,
			Prompt: "7. **Recurrence**\nWill this event repeat? If yes, specify the pattern (daily, weekly, monthly, etc.) and any exceptions.",
		},
		{
			Name:   task.FieldNotes,
			Prompt: "8. **Notes/Additional Information**\nAny additional details, such as parking information, special instructions, or pre-event preparation.",
		},
		{
			Name:   task.FieldRSVP,
			Prompt: "9. **Action Items/RSVP Requests**\nDoes the event require attendees to RSVP or complete specific tasks beforehand? If yes, provide instructions.",
		},
	}
}
