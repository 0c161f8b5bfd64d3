package domain

// stopWords are tokens too generic to drive a title match, in the
// languages the assistant speaks.
var stopWords = []string{
	"a", "an", "the", "my", "to", "for", "in", "at", "on", "of", "and",
	"do", "go", "did", "task", "with",
	"في", "من", "إلى", "الى", "عن", "على", "مع", "ال", "و", "ثم", "أن", "ان",
}

// synonymGroups are task-domain concept groups. Two tokens hit when they
// share a group, which lets "run" find "جري صباحي" and vice versa.
var synonymGroups = [][]string{
	// exercise
	{
		"run", "running", "jog", "jogging", "walk", "walking", "workout",
		"gym", "exercise", "training", "sport", "fitness",
		"جري", "ركض", "مشي", "تمرين", "تمارين", "رياضة", "نادي",
	},
	// prayer and worship
	{
		"pray", "prayer", "salah", "salat", "dhikr", "quran", "worship",
		"صلاة", "صلاه", "ذكر", "أذكار", "اذكار", "قرآن", "قران", "ورد", "عبادة",
	},
	// study and reading
	{
		"study", "studying", "read", "reading", "review", "homework",
		"lecture", "book", "course",
		"دراسة", "مذاكرة", "قراءة", "قراءه", "مراجعة", "محاضرة", "كتاب", "درس",
	},
	// meetings and calls
	{
		"meeting", "call", "appointment", "interview", "standup",
		"اجتماع", "مكالمة", "مقابلة", "موعد", "اتصال",
	},
	// shopping and errands
	{
		"shop", "shopping", "groceries", "grocery", "buy", "market", "errand",
		"تسوق", "تسوّق", "شراء", "بقالة", "سوق", "مشوار",
	},
	// cooking and meals
	{
		"cook", "cooking", "meal", "lunch", "dinner", "breakfast", "kitchen",
		"طبخ", "طعام", "غداء", "عشاء", "فطور", "مطبخ",
	},
	// cleaning and chores
	{
		"clean", "cleaning", "tidy", "laundry", "dishes", "chores",
		"تنظيف", "ترتيب", "غسيل", "مواعين",
	},
	// work
	{
		"work", "job", "office", "project", "report", "email", "emails",
		"عمل", "شغل", "وظيفة", "مكتب", "مشروع", "تقرير", "بريد",
	},
	// family and social
	{
		"family", "visit", "friends", "parents", "kids",
		"عائلة", "أهل", "اهل", "زيارة", "زياره", "أصدقاء", "اصدقاء", "أطفال", "اطفال",
	},
	// rest
	{
		"rest", "break", "nap", "sleep", "relax",
		"راحة", "استراحة", "قيلولة", "نوم",
	},
}
