package seed

// City is a seeding market: its localities and how far its rents sit from the baseline.
type City struct {
	Name            string
	Localities      []string
	PriceMultiplier float64
}

// Cities are the markets demo listings are spread across.
var Cities = []City{
	{"Mumbai", []string{"Andheri West", "Bandra West", "Juhu", "Powai", "Worli", "Lower Parel", "Goregaon", "Malad", "Kandivali", "Borivali", "Thane", "Navi Mumbai", "Colaba", "Marine Drive", "Dadar"}, 1.5},
	{"Delhi", []string{"Dwarka", "Rohini", "Vasant Kunj", "Saket", "Greater Kailash", "Hauz Khas", "Lajpat Nagar", "Janakpuri", "Rajouri Garden", "Pitampura", "Mayur Vihar", "Nehru Place", "Connaught Place", "Karol Bagh", "Punjabi Bagh"}, 1.3},
	{"Bangalore", []string{"Whitefield", "Electronic City", "Koramangala", "Indiranagar", "HSR Layout", "Marathahalli", "BTM Layout", "JP Nagar", "Hebbal", "Yelahanka", "Sarjapur Road", "Bannerghatta Road", "Bellandur", "Mahadevapura", "Jayanagar"}, 1.2},
	{"Hyderabad", []string{"Gachibowli", "Hitech City", "Madhapur", "Jubilee Hills", "Banjara Hills", "Kondapur", "Kukatpally", "Miyapur", "Mehdipatnam", "Ameerpet", "Secunderabad", "Begumpet", "Bachupally", "Kompally"}, 1.0},
	{"Pune", []string{"Hinjewadi", "Wakad", "Baner", "Aundh", "Viman Nagar", "Koregaon Park", "Kalyani Nagar", "Kharadi", "Magarpatta", "Hadapsar", "Pimple Saudagar", "Pimpri Chinchwad", "Katraj", "Warje", "Kothrud"}, 1.0},
	{"Chennai", []string{"OMR", "Velachery", "Anna Nagar", "T Nagar", "Adyar", "Besant Nagar", "Nungambakkam", "Mylapore", "Porur", "Tambaram", "Thoraipakkam", "Pallikaranai", "Perungudi", "Sholinganallur", "Medavakkam"}, 1.1},
	{"Kolkata", []string{"Salt Lake", "New Town", "Rajarhat", "Park Street", "Ballygunge", "Alipore", "Behala", "Jadavpur", "Garia", "Howrah", "Dum Dum", "Barasat", "Kasba", "Santoshpur", "Lake Town"}, 0.8},
	{"Ahmedabad", []string{"Prahlad Nagar", "Satellite", "Bodakdev", "Vastrapur", "Thaltej", "Ambawadi", "Navrangpura", "SG Highway", "Bopal", "Gota", "Chandkheda", "Maninagar", "Naranpura", "Sabarmati", "Vastral"}, 0.7},
	{"Jaipur", []string{"Malviya Nagar", "Vaishali Nagar", "Mansarovar", "Jagatpura", "Sitapura", "Tonk Road", "Ajmer Road", "C-Scheme", "Raja Park", "Civil Lines", "Bani Park", "Jhotwara", "Sanganer", "Sodala", "Nirman Nagar"}, 0.6},
	{"Lucknow", []string{"Gomti Nagar", "Indira Nagar", "Aliganj", "Alambagh", "Hazratganj", "Mahanagar", "Rajajipuram", "Jankipuram", "Chinhat", "Chowk", "Aminabad", "Dalibagh", "Vikas Nagar", "Nirala Nagar", "Ashiana"}, 0.6},
	{"Chandigarh", []string{"Sector 17", "Sector 22", "Sector 34", "Sector 35", "Sector 43", "Sector 47", "Mohali", "Panchkula", "Zirakpur", "Kharar", "Sector 8", "Sector 15", "Sector 27", "Sector 32", "Sector 40"}, 0.9},
	{"Noida", []string{"Sector 62", "Sector 76", "Sector 137", "Sector 150", "Greater Noida", "Noida Extension", "Sector 18", "Sector 45", "Sector 50", "Sector 78", "Sector 104", "Sector 120", "Sector 128", "Sector 144", "Sector 168"}, 1.0},
}

var propertyTypes = []string{"APARTMENT", "VILLA", "INDEPENDENT_FLOOR", "STUDIO", "PENTHOUSE", "DUPLEX"}

var amenities = []string{
	"24/7 Security", "Power Backup", "Gym", "Swimming Pool", "Kids Play Area",
	"Clubhouse", "Parking", "Lift", "Garden", "CCTV Surveillance",
}

var listingImages = []string{
	"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800&q=80",
	"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800&q=80",
	"https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=800&q=80",
	"https://images.unsplash.com/photo-1600596542815-2250657d2f96?w=800&q=80",
	"https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800&q=80",
	"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800&q=80",
	"https://images.unsplash.com/photo-1626178793926-22b28830aa30?w=800&q=80",
	"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800&q=80",
	"https://images.unsplash.com/photo-1605146769289-440188cc0d20?w=800&q=80",
	"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&q=80",
	"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&q=80",
	"https://images.unsplash.com/photo-1580587771525-78b9dba3b914?w=800&q=80",
}
