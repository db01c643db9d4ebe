package roster

// jerseyHistory lists every number issued in recent seasons with the name
// spellings it was recorded under. Numbers can repeat when reissued.
var jerseyHistory = []JerseyEntry{
	{Number: 0, Names: []string{"Dalin Afu", "Dalin N. Afu"}},
	{Number: 1, Names: []string{"David Dean", "David B. Dean"}},
	{Number: 2, Names: []string{"Gunner Michaelis", "Gunner B. Michaelis"}},
	{Number: 3, Names: []string{"Jackson Theobald", "Jackson K. Theobald"}},
	{Number: 4, Names: []string{"Corbin Bauerle", "Corbin D. Bauerle"}},
	{Number: 5, Names: []string{"Noah Behm", "Noah H. Behm"}},
	{Number: 6, Names: []string{"Beckham Rees", "Beckham B. Rees"}},
	{Number: 7, Names: []string{"Derek Manning", "Derek R. Manning"}},
	{Number: 8, Names: []string{"Christian Hanshaw"}},
	{Number: 9, Names: []string{"Dyson Richards"}},
	{Number: 10, Names: []string{"Prince Afu"}},
	{Number: 11, Names: []string{"Damian Wilkinson", "Damian C. Wilkinson"}},
	{Number: 12, Names: []string{"Sawyer Hayward", "Sawyer R. Hayward"}},
	{Number: 13, Names: []string{"Preston Fairbanks", "Preston J. Fairbanks"}},
	{Number: 14, Names: []string{"Jack Reutzel"}},
	{Number: 15, Names: []string{"Ocean Bishop", "Ocean T. Bishop"}},
	{Number: 16, Names: []string{"Owen Gardner", "Owen D. Gardner"}},
	{Number: 17, Names: []string{"Nate Childs", "Nathan B. Childs"}},
	{Number: 18, Names: []string{"Kapono Manuela", "Kapono R. Manuela"}},
	{Number: 19, Names: []string{"Hayden Reutzel", "Hayden D. Reutzel"}},
	{Number: 20, Names: []string{"Luke Broadbent", "Luke O. Broadbent"}},
	{Number: 21, Names: []string{"Andrew Aaron", "Andrew M. Aaron"}},
	{Number: 23, Names: []string{"Latani Vaki", "Latani H. Vaki"}},
	{Number: 24, Names: []string{"Maxon Degroot", "Maxon J. DeGroot"}},
	{Number: 25, Names: []string{"Jett Prestwich", "Jett J. Prestwich"}},
	{Number: 26, Names: []string{"Brady Belliston", "Brady J. Belliston"}},
	{Number: 27, Names: []string{"Rhett Jensen"}},
	{Number: 28, Names: []string{"Madden Jensen", "Madden S. Jensen"}},
	{Number: 29, Names: []string{"Lincoln Miller", "Lincoln M. Miller"}},
	{Number: 30, Names: []string{"Max Larson", "Maxwell A. Larson"}},
	{Number: 31, Names: []string{"Ziah Lueng-Wai", "Ziah A. Leung-Wai"}},
	{Number: 32, Names: []string{"Ryker Tippets", "Ryker F. Tippets"}},
	{Number: 33, Names: []string{"Carter Jorgensen", "Carter J. Jorgenson"}},
	{Number: 34, Names: []string{"Jake Matsen"}},
	{Number: 35, Names: []string{"Samson Thompson", "Samson N. Thompson"}},
	{Number: 36, Names: []string{"Mathew Nelson"}},
	{Number: 37, Names: []string{"Owen Peterson", "Owen T. Peterson"}},
	{Number: 38, Names: []string{"Talon Willardson", "Talon J. Willardson"}},
	{Number: 39, Names: []string{"Ty Wilson", "Ty M. Wilson"}},
	{Number: 40, Names: []string{"Drew Greenwood"}},
	{Number: 41, Names: []string{"Levi Woods", "Levi E. Woods"}},
	{Number: 42, Names: []string{"Mack Segura", "Mack T. Segura"}},
	{Number: 43, Names: []string{"Trigg Camberlango", "Trigg A. Camberlango"}},
	{Number: 44, Names: []string{"David Lambourne"}},
	{Number: 45, Names: []string{"Luke Vernon", "Luke S. Vernon"}},
	{Number: 46, Names: []string{"Samuel Merten"}},
	{Number: 50, Names: []string{"Matthew Bowen", "Matthew A. Bowen"}},
	{Number: 51, Names: []string{"Tuapasi Jr Uluilakepa", "Tuapasi A. Uluilakepa Jr", "Tuapasi Uluilakepa Jr"}},
	{Number: 52, Names: []string{"Xander Voeller", "Xander D. Voeller"}},
	{Number: 53, Names: []string{"Mason Petersen", "Mason T. Petersen"}},
	{Number: 54, Names: []string{"Kale Hansen"}},
	{Number: 54, Names: []string{"Josh Jackson", "Joshua C. Jackson"}},
	{Number: 55, Names: []string{"Mitt Palmer"}},
	{Number: 56, Names: []string{"Logan Giles", "Logan R. Giles"}},
	{Number: 57, Names: []string{"Madden Mack", "Madden S. Mack"}},
	{Number: 58, Names: []string{"Aiden Genessy"}},
	{Number: 59, Names: []string{"Blake Averrett", "Blake H. Averett"}},
	{Number: 61, Names: []string{"Dalin Afu", "Dalin N. Afu"}},
	{Number: 62, Names: []string{"Hauati Schwenke"}},
	{Number: 64, Names: []string{"Tyler Andrus", "Tyler R. Andrus"}},
	{Number: 65, Names: []string{"Jaybian Na'a", "Jaybian-Damani V. Na'a"}},
	{Number: 66, Names: []string{"McKay Christensen", "Mckay Christensen"}},
	{Number: 67, Names: []string{"Collin Christensen", "Collin J. Christensen"}},
	{Number: 68, Names: []string{"Elijah Chadwick"}},
	{Number: 69, Names: []string{"Jackson Chadwick", "Jackson T. Chadwick"}},
	{Number: 70, Names: []string{"Carson Thorne", "Carson A. Thorne"}},
	{Number: 71, Names: []string{"Ryan Dawson", "Ryan J. Dawson"}},
	{Number: 72, Names: []string{"Cason Davis", "Cason K. Davis"}},
	{Number: 73, Names: []string{"Nate Higley", "Nathan S. Higley"}},
	{Number: 76, Names: []string{"Talon Roberts", "Talon K. Roberts"}},
	{Number: 77, Names: []string{"Hudson Taylor", "Hudson B. Taylor"}},
	{Number: 79, Names: []string{"Kaedin Laursen", "Kaedin J. Laursen"}},
	{Number: 80, Names: []string{"Braylon Carroll", "Braylon T. Carroll"}},
	{Number: 81, Names: []string{"Mason Brooks", "Mason R. Brooks"}},
	{Number: 82, Names: []string{"Cash Taiese", "Cash Talese", "Cash T. Talese"}},
	{Number: 84, Names: []string{"Dayton Hansen", "Dayton C. Hansen"}},
	{Number: 85, Names: []string{"Ty Holmstead"}},
	{Number: 86, Names: []string{"Octavious Luna"}},
	{Number: 87, Names: []string{"Rahim Matador"}},
	{Number: 88, Names: []string{"Zach Cowie", "Zachary D. Cowie"}},
	{Number: 89, Names: []string{"Parker Pulley", "Parker L. Pulley"}},
	{Number: 90, Names: []string{"Bodee Bond", "Bodee N. Bond"}},
	{Number: 91, Names: []string{"Magnum Clark"}},
	{Number: 92, Names: []string{"Tyler Ellery"}},
	{Number: 93, Names: []string{"Ben Iongi"}},
	{Number: 94, Names: []string{"Riley Averett", "Riley R. Averett"}},
	{Number: 95, Names: []string{"Zack Lewis", "Zackary S. Lewis"}},
	{Number: 96, Names: []string{"Jace Worthington"}},
	{Number: 97, Names: []string{"Manatua Fano", "Manatua J. Fano"}},
	{Number: 98, Names: []string{"Dylan Latu", "Dylan S. Latu"}},
	{Number: 99, Names: []string{"Daedae Mausia", "Eikipeavale T. Mausia"}},
}
