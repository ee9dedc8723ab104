package records

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

// Builtin returns the sample dataset used when no source is configured.
// Every call returns fresh slices.
func Builtin() *Dataset {
	return &Dataset{
		Leads:     builtinLeads(),
		Approvals: builtinApprovals(),
		Employees: builtinEmployees(),
	}
}

func builtinLeads() []Lead {
	return []Lead{
		{"LD-001", "Ravi Kumar", "Acme Corp", "ravi@acme.example", "+91 98450 11201", "website", StatusNew, "Priya Nair", 120000, date(2024, time.January, 4)},
		{"LD-002", "Anita Shah", "Northwind Traders", "anita@northwind.example", "+91 98450 11202", "referral", StatusContacted, "Arjun Mehta", 45000, date(2024, time.January, 9)},
		{"LD-003", "Bob Stone", "Globex", "bob.stone@globex.example", "+1 415 555 0103", "trade-show", StatusQualified, "Priya Nair", 310000, date(2024, time.January, 12)},
		{"LD-004", "Carla Diaz", "Initech", "carla@initech.example", "+1 512 555 0104", "campaign", StatusWon, "Sara Khan", 98000, date(2024, time.January, 15)},
		{"LD-005", "Dev Patel", "Acme Labs", "dev@acmelabs.example", "+91 98450 11205", "website", StatusLost, "Arjun Mehta", 15000, date(2024, time.January, 19)},
		{"LD-006", "Meera Iyer", "Umbrella Health", "meera@umbrella.example", "+91 98450 11206", "cold-call", StatusNew, "Sara Khan", 72000, date(2024, time.January, 23)},
		{"LD-007", "Tom Becker", "Stark Logistics", "tom@starklog.example", "+49 30 5550107", "referral", StatusQualified, "Priya Nair", 260000, date(2024, time.January, 26)},
		{"LD-008", "Lina Park", "Hooli", "lina.park@hooli.example", "+1 650 555 0108", "website", StatusContacted, "Arjun Mehta", 54000, date(2024, time.February, 1)},
		{"LD-009", "Kiran Rao", "Wayne Textiles", "kiran@waynetex.example", "+91 98450 11209", "trade-show", StatusNew, "Priya Nair", 88000, date(2024, time.February, 5)},
		{"LD-010", "Fatima Noor", "Soylent Foods", "fatima@soylent.example", "+971 4 555 0110", "campaign", StatusWon, "Sara Khan", 150000, date(2024, time.February, 8)},
		{"LD-011", "George Miller", "Cyberdyne Systems", "george@cyberdyne.example", "+1 213 555 0111", "cold-call", StatusLost, "Arjun Mehta", 20000, date(2024, time.February, 12)},
		{"LD-012", "Hana Sato", "Tyrell Retail", "hana@tyrell.example", "+81 3 5550 0112", "referral", StatusQualified, "Priya Nair", 205000, date(2024, time.February, 15)},
		{"LD-013", "Isha Gupta", "Vandelay Imports", "isha@vandelay.example", "+91 98450 11213", "website", StatusNew, "Sara Khan", 39000, date(2024, time.February, 19)},
		{"LD-014", "Jonas Berg", "Nordic Pulp", "jonas@nordicpulp.example", "+46 8 555 0114", "trade-show", StatusContacted, "Arjun Mehta", 67000, date(2024, time.February, 22)},
		{"LD-015", "Kavya Menon", "Oceanic Air", "kavya@oceanic.example", "+91 98450 11215", "campaign", StatusNew, "Priya Nair", 112000, date(2024, time.February, 26)},
		{"LD-016", "Liam O'Brien", "Dunder Paper", "liam@dunder.example", "+353 1 555 0116", "cold-call", StatusQualified, "Sara Khan", 83000, date(2024, time.March, 1)},
		{"LD-017", "Maya Pillai", "Acme Corp", "maya@acme.example", "+91 98450 11217", "referral", StatusWon, "Priya Nair", 240000, date(2024, time.March, 5)},
		{"LD-018", "Nikhil Joshi", "Zenith Motors", "nikhil@zenith.example", "+91 98450 11218", "website", StatusContacted, "Arjun Mehta", 56000, date(2024, time.March, 8)},
		{"LD-019", "Olivia Chen", "Pied Piper", "olivia@piedpiper.example", "+1 650 555 0119", "trade-show", StatusNew, "Sara Khan", 47000, date(2024, time.March, 12)},
		{"LD-020", "Pranav Desai", "Globex", "pranav@globex.example", "+91 98450 11220", "campaign", StatusLost, "Priya Nair", 31000, date(2024, time.March, 15)},
		{"LD-021", "Quinn Harper", "Massive Dynamic", "quinn@massive.example", "+1 617 555 0121", "cold-call", StatusQualified, "Arjun Mehta", 178000, date(2024, time.March, 19)},
		{"LD-022", "Riya Bansal", "Northwind Traders", "riya@northwind.example", "+91 98450 11222", "website", StatusNew, "Sara Khan", 61000, date(2024, time.March, 22)},
		{"LD-023", "Sam Okafor", "Gringotts Finance", "sam@gringotts.example", "+234 1 555 0123", "referral", StatusContacted, "Priya Nair", 134000, date(2024, time.March, 26)},
		{"LD-024", "Tara Singh", "Initech", "tara@initech.example", "+91 98450 11224", "campaign", StatusWon, "Arjun Mehta", 92000, date(2024, time.March, 29)},
	}
}

func builtinApprovals() []Approval {
	return []Approval{
		{"AP-001", "Laptop refresh for sales team", "purchase", "Priya Nair", 420000, StatusPending, date(2024, time.March, 1)},
		{"AP-002", "Annual leave: 5 days", "leave", "Arjun Mehta", 0, StatusApproved, date(2024, time.March, 3)},
		{"AP-003", "Client dinner, Globex", "expense", "Sara Khan", 8600, StatusPending, date(2024, time.March, 4)},
		{"AP-004", "Trade show booth deposit", "purchase", "Priya Nair", 150000, StatusRejected, date(2024, time.March, 6)},
		{"AP-005", "Travel to Pune office", "travel", "Arjun Mehta", 23400, StatusPending, date(2024, time.March, 8)},
		{"AP-006", "Sick leave: 2 days", "leave", "Nikhil Joshi", 0, StatusApproved, date(2024, time.March, 9)},
		{"AP-007", "CRM seat expansion", "purchase", "Sara Khan", 96000, StatusPending, date(2024, time.March, 11)},
		{"AP-008", "Taxi reimbursements February", "expense", "Kavya Menon", 3150, StatusApproved, date(2024, time.March, 12)},
		{"AP-009", "Conference ticket", "travel", "Olivia Chen", 41000, StatusPending, date(2024, time.March, 14)},
		{"AP-010", "Work from home: 3 days", "leave", "Riya Bansal", 0, StatusPending, date(2024, time.March, 15)},
		{"AP-011", "Office chairs", "purchase", "Tara Singh", 57000, StatusApproved, date(2024, time.March, 18)},
		{"AP-012", "Team offsite venue", "expense", "Priya Nair", 210000, StatusPending, date(2024, time.March, 20)},
	}
}

func builtinEmployees() []Employee {
	return []Employee{
		{"EMP-001", "Priya Nair", "Sales", "Sales Manager", 95000},
		{"EMP-002", "Arjun Mehta", "Sales", "Account Executive", 62000},
		{"EMP-003", "Sara Khan", "Sales", "Account Executive", 60000},
		{"EMP-004", "Nikhil Joshi", "Engineering", "Software Engineer", 85000},
		{"EMP-005", "Kavya Menon", "Finance", "Accountant", 48000},
		{"EMP-006", "Olivia Chen", "Marketing", "Marketing Lead", 78000},
		{"EMP-007", "Riya Bansal", "HR", "HR Executive", 41000},
		{"EMP-008", "Tara Singh", "Operations", "Operations Analyst", 52000},
		{"EMP-009", "Isha Gupta", "Engineering", "Intern", 18000},
		{"EMP-010", "Dev Patel", "Finance", "Finance Controller", 130000},
	}
}
