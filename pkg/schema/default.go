package schema

// DefaultDescription is the built-in column listing for the gallery sales
// database, in the same "Table,Column,Type" format Parse accepts. Servers
// without a schema file run against this.
const DefaultDescription = `Sales,SaleID,int
Sales,CustID,int
Sales,StaffID,int
Sales,GalleryID,int
Sales,SaleDate,datetime
Sales,TotalAmount,money
Customers,CustID,int
Customers,FirstName,varchar
Customers,LastName,varchar
Customers,City,varchar
Customers,Email,varchar
Staff,StaffID,int
Staff,FirstName,varchar
Staff,LastName,varchar
Staff,Role,varchar
Galleries,GalleryID,int
Galleries,GalleryName,varchar
Galleries,City,varchar
SaleItems,SaleItemID,int
SaleItems,SaleID,int
SaleItems,ItemID,int
SaleItems,Quantity,int
SaleItems,UnitPrice,money`
