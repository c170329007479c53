package events

import "salsa-storefront/internal/models"

// Seed events ship with the app. They are read-only: never written to
// the events slot, never editable, unioned with user events at query
// time. User events must not claim these ids.
var seedEvents = []models.Event{
	{
		ID:          "1",
		Title:       "New Braunfels Farmers Market",
		Location:    "Downtown New Braunfels",
		Address:     "390 S Seguin Ave, New Braunfels, TX 78130",
		Date:        "2025-11-14",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Come visit us at the New Braunfels Farmers Market for fresh salsa!",
	},
	{
		ID:          "2",
		Title:       "San Antonio Pearl Farmers Market",
		Location:    "The Pearl",
		Address:     "312 Pearl Pkwy, San Antonio, TX 78215",
		Date:        "2025-11-21",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Find us at the Pearl Farmers Market this Saturday!",
	},
	{
		ID:          "3",
		Title:       "New Braunfels Farmers Market",
		Location:    "Downtown New Braunfels",
		Address:     "390 S Seguin Ave, New Braunfels, TX 78130",
		Date:        "2025-11-28",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Come visit us at the New Braunfels Farmers Market for fresh salsa!",
	},
	{
		ID:          "4",
		Title:       "San Antonio Pearl Farmers Market",
		Location:    "The Pearl",
		Address:     "312 Pearl Pkwy, San Antonio, TX 78215",
		Date:        "2025-12-05",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Find us at the Pearl Farmers Market this Saturday!",
	},
	{
		ID:          "5",
		Title:       "New Braunfels Farmers Market",
		Location:    "Downtown New Braunfels",
		Address:     "390 S Seguin Ave, New Braunfels, TX 78130",
		Date:        "2025-12-12",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Come visit us at the New Braunfels Farmers Market for fresh salsa!",
	},
	{
		ID:          "6",
		Title:       "San Antonio Pearl Farmers Market",
		Location:    "The Pearl",
		Address:     "312 Pearl Pkwy, San Antonio, TX 78215",
		Date:        "2025-12-19",
		StartTime:   "9:00 AM",
		EndTime:     "1:00 PM",
		Description: "Find us at the Pearl Farmers Market this Saturday!",
	},
}
