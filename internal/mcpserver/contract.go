package mcpserver

// BookingRulesContract describes the booking constraints that LLM consumers
// should respect when creating appointments.
const BookingRulesContract = `# Klinika Booking Rules

Every appointment booked in Klinika MUST satisfy these constraints.

## Fields

` + "```" + `json
{
  "service": "Massage",        // REQUIRED - treatment name, free text
  "client": "Anna Jensen",     // REQUIRED - client name, free text
  "date": "2025-11-11",        // YYYY-MM-DD, defaults to today
  "start_time": "10:00",       // HH:MM 24h, defaults to 09:00
  "duration": 60               // minutes, defaults to 60
}
` + "```" + `

## Rules

1. **Start times** run from 09:00 to 16:45 in 15-minute steps
   (09:00, 09:15, ..., 16:45). Other times are rejected.
2. **Durations** must be one of 30, 45, 60 or 90 minutes.
3. **The date window** runs from today through three months ahead,
   both days inclusive. Past dates and dates beyond the horizon are rejected.
4. **Overlaps are allowed.** Two appointments may share a time slot;
   the calendar renders them side by side.
5. **Rejections are per field.** An invalid request reports every failing
   field at once and stores nothing.

## Calendar layout

- The week grid runs Monday through Sunday and shows 09:00 to 17:00.
- Block offsets are measured in row units from the 09:00 line:
  a 60-minute appointment at 10:00 sits one row down and one row tall.
`
