// Package calendar provides a client for the Google Calendar API.
//
// It covers the two calls voicecal makes: inserting a normalized event
// and listing the next upcoming events of a calendar.
//
// Example usage:
//
//	client, err := calendar.NewClient(ctx, httpClient)
//	if err != nil {
//	    return err
//	}
//	created, err := client.CreateEvent(ctx, "primary", ev)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(created.HTMLLink)
package calendar
